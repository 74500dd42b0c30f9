package claim

import (
	"time"

	"github.com/frahmantamala/claim-management/internal"
)

type DetailDTO struct {
	FromTime time.Time `json:"from_time"`
	ToTime   time.Time `json:"to_time"`
	Remark   string    `json:"remark"`
}

type CreateClaimDTO struct {
	ProjectID int64       `json:"project_id"`
	Remark    string      `json:"remark"`
	Details   []DetailDTO `json:"details"`
}

func (d CreateClaimDTO) Validate() error {
	if d.ProjectID <= 0 {
		return internal.NewValidationError("project_id is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Details) == 0 {
		return internal.NewValidationError("at least one claim detail is required", internal.ErrCodeValidationFailed)
	}
	return validateDetails(d.Details)
}

type UpdateClaimDTO struct {
	Remark  string      `json:"remark"`
	Details []DetailDTO `json:"details"`
}

func (d UpdateClaimDTO) Validate() error {
	if len(d.Details) == 0 {
		return internal.NewValidationError("at least one claim detail is required", internal.ErrCodeValidationFailed)
	}
	return validateDetails(d.Details)
}

func validateDetails(details []DetailDTO) error {
	for _, detail := range details {
		if detail.FromTime.IsZero() || detail.ToTime.IsZero() {
			return internal.NewValidationError("from_time and to_time are required on every detail", internal.ErrCodeValidationFailed)
		}
		if !detail.ToTime.After(detail.FromTime) {
			return internal.ErrInvalidInterval
		}
	}
	return nil
}

// RemarkDTO carries the mandatory note for reject and return.
type RemarkDTO struct {
	Remark string `json:"remark"`
}

type BatchDTO struct {
	ClaimIDs []int64 `json:"claim_ids"`
}

func (d BatchDTO) Validate() error {
	if len(d.ClaimIDs) == 0 {
		return internal.NewValidationError("claim_ids is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListFilter struct {
	Status    string
	ProjectID int64
	UserID    int64
	Limit     int
	Offset    int
}
