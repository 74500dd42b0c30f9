package enrollment

import "github.com/frahmantamala/claim-management/internal"

type CreateEnrollmentDTO struct {
	ProjectID   int64  `json:"project_id"`
	UserID      int64  `json:"user_id"`
	ProjectRole string `json:"project_role"`
}

func (dto CreateEnrollmentDTO) Validate() error {
	if dto.ProjectID <= 0 {
		return internal.NewValidationError("project_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.UserID <= 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	if !ValidRole(dto.ProjectRole) {
		return internal.NewValidationError("invalid project role", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateEnrollmentDTO struct {
	ProjectRole  string `json:"project_role"`
	EnrollStatus string `json:"enroll_status"`
}

func (dto UpdateEnrollmentDTO) Validate() error {
	if !ValidRole(dto.ProjectRole) {
		return internal.NewValidationError("invalid project role", internal.ErrCodeValidationFailed)
	}
	if dto.EnrollStatus != EnrollStatusActive && dto.EnrollStatus != EnrollStatusInactive {
		return internal.NewValidationError("enroll status must be active or inactive", internal.ErrCodeValidationFailed)
	}
	return nil
}
