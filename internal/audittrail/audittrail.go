package audittrail

import (
	"time"

	auditDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/audittrail"
)

// Actions recorded for claim transitions. One entry per accepted transition.
const (
	ActionSubmit  = "Submit"
	ActionApprove = "Approve"
	ActionReject  = "Reject"
	ActionReturn  = "Return"
	ActionCancel  = "Cancel"
	ActionPaid    = "Paid"
	ActionUpdate  = "Update"
)

type Entry struct {
	ID         int64     `json:"id"`
	ClaimID    int64     `json:"claim_id"`
	ActorID    int64     `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Action     string    `json:"action"`
	Note       string    `json:"note"`
	ActionDate time.Time `json:"action_date"`
}

func ToDataModel(e *Entry) *auditDatamodel.AuditTrail {
	return &auditDatamodel.AuditTrail{
		ID:         e.ID,
		ClaimID:    e.ClaimID,
		ActorID:    e.ActorID,
		ActorName:  e.ActorName,
		Action:     e.Action,
		Note:       e.Note,
		ActionDate: e.ActionDate,
	}
}

func FromDataModel(e *auditDatamodel.AuditTrail) *Entry {
	return &Entry{
		ID:         e.ID,
		ClaimID:    e.ClaimID,
		ActorID:    e.ActorID,
		ActorName:  e.ActorName,
		Action:     e.Action,
		Note:       e.Note,
		ActionDate: e.ActionDate,
	}
}

func FromDataModelSlice(entries []*auditDatamodel.AuditTrail) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
