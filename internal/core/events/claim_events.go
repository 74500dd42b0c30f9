package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClaimSubmittedEvent = "claim.submitted"
	ClaimApprovedEvent  = "claim.approved"
	ClaimReturnedEvent  = "claim.returned"
)

// NewClaimEvent builds a claim transition event carrying everything the
// notification handler needs to compose an email without further lookups.
func NewClaimEvent(eventType string, claimID int64, creatorName, creatorEmail, recipientEmail, projectName, remark string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"claim_id":        claimID,
			"creator_name":    creatorName,
			"creator_email":   creatorEmail,
			"recipient_email": recipientEmail,
			"project_name":    projectName,
			"remark":          remark,
		},
	}
}
