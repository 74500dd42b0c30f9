package claim

import (
	"math"
	"time"

	claimDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/claim"
)

// Status is the claim lifecycle state. Transitions are only possible through
// the table below; terminal states accept nothing.
type Status string

const (
	StatusDraft           Status = "Draft"
	StatusPendingApproval Status = "PendingApproval"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
	StatusCancelled       Status = "Cancelled"
	StatusPaid            Status = "Paid"
)

var transitions = map[Status][]Status{
	StatusDraft:           {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusDraft},
	StatusApproved:        {StatusPaid},
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoursPerMonth is the divisor that turns a monthly salary into an hourly
// rate: 24 working days of 8 hours.
const HoursPerMonth = 192

type Detail struct {
	ID       int64     `json:"id"`
	ClaimID  int64     `json:"claim_id"`
	FromTime time.Time `json:"from_time"`
	ToTime   time.Time `json:"to_time"`
	Remark   string    `json:"remark"`
}

// WorkingHours returns the detail interval length in hours.
func (d Detail) WorkingHours() float64 {
	return d.ToTime.Sub(d.FromTime).Hours()
}

type Claim struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	ProjectID         int64     `json:"project_id"`
	ClaimStatus       Status    `json:"claim_status"`
	TotalWorkingHours float64   `json:"total_working_hours"`
	TotalClaimAmount  int64     `json:"total_claim_amount"`
	Remark            string    `json:"remark"`
	Details           []Detail  `json:"details,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (c *Claim) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}

// ComputeTotals derives working hours from the details and the claim amount
// from the creator's monthly salary. Used identically on create and update.
func (c *Claim) ComputeTotals(monthlySalary int64) {
	var hours float64
	for _, d := range c.Details {
		hours += d.WorkingHours()
	}
	c.TotalWorkingHours = hours
	c.TotalClaimAmount = int64(math.Round(hours * float64(monthlySalary) / HoursPerMonth))
}

func ToDataModel(c *Claim) *claimDatamodel.ClaimRequest {
	dm := &claimDatamodel.ClaimRequest{
		ID:                c.ID,
		UserID:            c.UserID,
		ProjectID:         c.ProjectID,
		ClaimStatus:       string(c.ClaimStatus),
		TotalWorkingHours: c.TotalWorkingHours,
		TotalClaimAmount:  c.TotalClaimAmount,
		Remark:            c.Remark,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	for _, d := range c.Details {
		dm.Details = append(dm.Details, claimDatamodel.ClaimDetail{
			ID:       d.ID,
			ClaimID:  d.ClaimID,
			FromTime: d.FromTime,
			ToTime:   d.ToTime,
			Remark:   d.Remark,
		})
	}
	return dm
}

func FromDataModel(dm *claimDatamodel.ClaimRequest) *Claim {
	c := &Claim{
		ID:                dm.ID,
		UserID:            dm.UserID,
		ProjectID:         dm.ProjectID,
		ClaimStatus:       Status(dm.ClaimStatus),
		TotalWorkingHours: dm.TotalWorkingHours,
		TotalClaimAmount:  dm.TotalClaimAmount,
		Remark:            dm.Remark,
		CreatedAt:         dm.CreatedAt,
		UpdatedAt:         dm.UpdatedAt,
	}
	for _, d := range dm.Details {
		c.Details = append(c.Details, Detail{
			ID:       d.ID,
			ClaimID:  d.ClaimID,
			FromTime: d.FromTime,
			ToTime:   d.ToTime,
			Remark:   d.Remark,
		})
	}
	return c
}

func FromDataModelSlice(dms []*claimDatamodel.ClaimRequest) []*Claim {
	result := make([]*Claim, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
