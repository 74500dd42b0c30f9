package auth

// Role names carried in the JWT and compared as strings; authorization in
// this system is role-based, there is no permission catalog.
const (
	RoleAdmin    = "ADMIN"
	RoleStaff    = "STAFF"
	RoleApprover = "APPROVER"
	RoleFinance  = "FINANCE"
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApproveClaims reports whether the user may approve, reject or return a
// pending claim. STAFF is explicitly excluded.
func (u *User) CanApproveClaims() bool {
	switch u.Role {
	case RoleAdmin, RoleApprover, RoleFinance:
		return true
	}
	return false
}

// CanPayClaims reports whether the user may mark approved claims as paid.
func (u *User) CanPayClaims() bool {
	switch u.Role {
	case RoleAdmin, RoleFinance:
		return true
	}
	return false
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleApprover, RoleFinance:
		return true
	}
	return false
}
