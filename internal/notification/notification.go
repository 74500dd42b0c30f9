package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/notification"
)

// Outbox row states. A row stays pending across failed attempts until the
// attempt budget runs out, then it is marked failed and left for inspection.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type Email struct {
	ID        string     `json:"id"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Status    string     `json:"status"`
	Attempts  int        `json:"attempts"`
	LastError string     `json:"last_error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

func ToDataModel(e *Email) *notificationDatamodel.EmailOutbox {
	return &notificationDatamodel.EmailOutbox{
		ID:        e.ID,
		Recipient: e.Recipient,
		Subject:   e.Subject,
		Body:      e.Body,
		Status:    e.Status,
		Attempts:  e.Attempts,
		LastError: e.LastError,
		CreatedAt: e.CreatedAt,
		SentAt:    e.SentAt,
	}
}

func FromDataModel(dm *notificationDatamodel.EmailOutbox) *Email {
	return &Email{
		ID:        dm.ID,
		Recipient: dm.Recipient,
		Subject:   dm.Subject,
		Body:      dm.Body,
		Status:    dm.Status,
		Attempts:  dm.Attempts,
		LastError: dm.LastError,
		CreatedAt: dm.CreatedAt,
		SentAt:    dm.SentAt,
	}
}

func FromDataModelSlice(dms []*notificationDatamodel.EmailOutbox) []*Email {
	result := make([]*Email, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
