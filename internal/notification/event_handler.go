package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/claim-management/internal/core/events"
)

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// EventHandler turns claim transition events into outbox rows. Delivery is
// the dispatch loop's problem; this handler only enqueues.
type EventHandler struct {
	outbox       *Service
	financeGroup string
	logger       *slog.Logger
}

func NewEventHandler(outbox *Service, financeGroup string, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		outbox:       outbox,
		financeGroup: financeGroup,
		logger:       logger,
	}
}

func (h *EventHandler) RegisterHandlers(bus Subscriber) {
	bus.Subscribe(events.ClaimSubmittedEvent, h.HandleClaimSubmitted)
	bus.Subscribe(events.ClaimApprovedEvent, h.HandleClaimApproved)
	bus.Subscribe(events.ClaimReturnedEvent, h.HandleClaimReturned)
}

func (h *EventHandler) HandleClaimSubmitted(ctx context.Context, event events.Event) error {
	p := claimPayload(event)
	subject := fmt.Sprintf("Claim #%d awaiting your approval", p.claimID)
	body := fmt.Sprintf(
		"%s submitted a claim on project %s.\n\nRemark: %s\n\nPlease review it in the claim portal.",
		p.creatorName, p.projectName, orDash(p.remark))

	_, err := h.outbox.Enqueue(p.recipientEmail, subject, body)
	return err
}

func (h *EventHandler) HandleClaimApproved(ctx context.Context, event events.Event) error {
	p := claimPayload(event)
	subject := fmt.Sprintf("Claim #%d approved", p.claimID)
	body := fmt.Sprintf(
		"Your claim on project %s has been approved and handed to finance for payment.",
		p.projectName)

	if _, err := h.outbox.Enqueue(p.recipientEmail, subject, body); err != nil {
		return err
	}

	// Finance gets its own copy so payment is not waiting on anyone
	// forwarding mail.
	if h.financeGroup != "" {
		financeBody := fmt.Sprintf(
			"Claim #%d by %s on project %s is approved and ready for payment.",
			p.claimID, p.creatorName, p.projectName)
		if _, err := h.outbox.Enqueue(h.financeGroup, subject, financeBody); err != nil {
			return err
		}
	}
	return nil
}

func (h *EventHandler) HandleClaimReturned(ctx context.Context, event events.Event) error {
	p := claimPayload(event)
	subject := fmt.Sprintf("Claim #%d returned for revision", p.claimID)
	body := fmt.Sprintf(
		"Your claim on project %s was returned by the approver.\n\nReason: %s\n\nUpdate the claim and submit it again.",
		p.projectName, orDash(p.remark))

	_, err := h.outbox.Enqueue(p.recipientEmail, subject, body)
	return err
}

type payload struct {
	claimID        int64
	creatorName    string
	creatorEmail   string
	recipientEmail string
	projectName    string
	remark         string
}

func claimPayload(event events.Event) payload {
	data, _ := event.Payload().(map[string]interface{})
	p := payload{}
	if v, ok := data["claim_id"].(int64); ok {
		p.claimID = v
	}
	p.creatorName, _ = data["creator_name"].(string)
	p.creatorEmail, _ = data["creator_email"].(string)
	p.recipientEmail, _ = data["recipient_email"].(string)
	p.projectName, _ = data["project_name"].(string)
	p.remark, _ = data["remark"].(string)
	return p
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
