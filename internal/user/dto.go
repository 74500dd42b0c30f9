package user

import (
	"strings"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/auth"
)

type CreateUserDTO struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Password      string `json:"password"`
	Department    string `json:"department"`
	Rank          string `json:"rank"`
	MonthlySalary int64  `json:"monthly_salary"`
	Role          string `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.MonthlySalary < 0 {
		return internal.NewValidationError("monthly salary cannot be negative", internal.ErrCodeValidationFailed)
	}
	if !auth.ValidRole(dto.Role) {
		return internal.NewValidationError("role must be one of ADMIN, STAFF, APPROVER, FINANCE", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateUserDTO struct {
	Name          string `json:"name"`
	Department    string `json:"department"`
	Rank          string `json:"rank"`
	MonthlySalary int64  `json:"monthly_salary"`
	Role          string `json:"role"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.MonthlySalary < 0 {
		return internal.NewValidationError("monthly salary cannot be negative", internal.ErrCodeValidationFailed)
	}
	if !auth.ValidRole(dto.Role) {
		return internal.NewValidationError("role must be one of ADMIN, STAFF, APPROVER, FINANCE", internal.ErrCodeValidationFailed)
	}
	return nil
}
