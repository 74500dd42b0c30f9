package enrollment

import (
	"time"

	enrollmentDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/enrollment"
)

// Project roles a user can hold on a project.
const (
	RoleProjectManager       = "ProjectManager"
	RoleDeveloper            = "Developer"
	RoleTester               = "Tester"
	RoleQualityAssurance     = "QualityAssurance"
	RoleBusinessAnalyst      = "BusinessAnalyst"
	RoleTechnicalLead        = "TechnicalLead"
	RoleTechnicalConsultancy = "TechnicalConsultancy"
)

const (
	EnrollStatusActive   = "active"
	EnrollStatusInactive = "inactive"
)

type Enrollment struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	UserID       int64     `json:"user_id"`
	ProjectRole  string    `json:"project_role"`
	EnrollStatus string    `json:"enroll_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleProjectManager, RoleDeveloper, RoleTester, RoleQualityAssurance,
		RoleBusinessAnalyst, RoleTechnicalLead, RoleTechnicalConsultancy:
		return true
	}
	return false
}

// SingleHolderRole reports whether a project may hold at most one active
// enrollment with this role.
func SingleHolderRole(role string) bool {
	return role == RoleProjectManager || role == RoleQualityAssurance
}

func ToDataModel(e *Enrollment) *enrollmentDatamodel.ProjectEnrollment {
	return &enrollmentDatamodel.ProjectEnrollment{
		ID:           e.ID,
		ProjectID:    e.ProjectID,
		UserID:       e.UserID,
		ProjectRole:  e.ProjectRole,
		EnrollStatus: e.EnrollStatus,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(e *enrollmentDatamodel.ProjectEnrollment) *Enrollment {
	return &Enrollment{
		ID:           e.ID,
		ProjectID:    e.ProjectID,
		UserID:       e.UserID,
		ProjectRole:  e.ProjectRole,
		EnrollStatus: e.EnrollStatus,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModelSlice(enrollments []*enrollmentDatamodel.ProjectEnrollment) []*Enrollment {
	result := make([]*Enrollment, len(enrollments))
	for i, e := range enrollments {
		result[i] = FromDataModel(e)
	}
	return result
}
