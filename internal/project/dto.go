package project

import (
	"strings"
	"time"

	"github.com/frahmantamala/claim-management/internal"
)

type CreateProjectDTO struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Budget    int64     `json:"budget"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (dto CreateProjectDTO) Validate() error {
	if strings.TrimSpace(dto.Code) == "" {
		return internal.NewValidationError("project code is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("project name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Budget < 0 {
		return internal.NewValidationError("budget cannot be negative", internal.ErrCodeValidationFailed)
	}
	if !dto.EndDate.IsZero() && !dto.StartDate.IsZero() && dto.EndDate.Before(dto.StartDate) {
		return internal.NewValidationError("end date cannot be before start date", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateProjectDTO struct {
	Name          string    `json:"name"`
	Budget        int64     `json:"budget"`
	ProjectStatus string    `json:"project_status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

func (dto UpdateProjectDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("project name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Budget < 0 {
		return internal.NewValidationError("budget cannot be negative", internal.ErrCodeValidationFailed)
	}
	if !ValidStatus(dto.ProjectStatus) {
		return internal.NewValidationError("project status must be one of active, on_hold, finished", internal.ErrCodeValidationFailed)
	}
	if !dto.EndDate.IsZero() && !dto.StartDate.IsZero() && dto.EndDate.Before(dto.StartDate) {
		return internal.NewValidationError("end date cannot be before start date", internal.ErrCodeValidationFailed)
	}
	return nil
}
