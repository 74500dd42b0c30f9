package notification

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(e *Email) error
	// GetDispatchable returns pending rows with fewer attempts than the
	// budget, oldest first.
	GetDispatchable(maxAttempts, limit int) ([]*Email, error)
	MarkSent(id string, sentAt time.Time) error
	MarkAttemptFailed(id string, attempts int, lastError string, exhausted bool) error
}

// Service owns the email outbox. Transitions enqueue rows through it and the
// dispatch loop drains them; a mail failure never reaches the caller of a
// claim operation, it only shows up in the outbox and the logs.
type Service struct {
	repo        Repository
	mailer      Mailer
	maxAttempts int
	logger      *slog.Logger
}

func NewService(repo Repository, mailer Mailer, maxAttempts int, logger *slog.Logger) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Service{
		repo:        repo,
		mailer:      mailer,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (s *Service) Enqueue(recipient, subject, body string) (*Email, error) {
	e := &Email{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    StatusPending,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to enqueue email", "error", err, "recipient", recipient)
		return nil, err
	}
	s.logger.Info("email enqueued", "email_id", e.ID, "recipient", recipient, "subject", subject)
	return e, nil
}

// DispatchPending drains up to limit rows from the outbox. It returns the
// number of emails delivered on this pass.
func (s *Service) DispatchPending(limit int) (int, error) {
	pending, err := s.repo.GetDispatchable(s.maxAttempts, limit)
	if err != nil {
		s.logger.Error("failed to load outbox", "error", err)
		return 0, err
	}

	sent := 0
	for _, e := range pending {
		if s.dispatch(e) {
			sent++
		}
	}
	if len(pending) > 0 {
		s.logger.Info("outbox pass finished", "picked", len(pending), "sent", sent)
	}
	return sent, nil
}

func (s *Service) dispatch(e *Email) bool {
	if err := s.mailer.Send(e.Recipient, e.Subject, e.Body); err != nil {
		attempts := e.Attempts + 1
		exhausted := attempts >= s.maxAttempts
		s.logger.Error("email delivery failed", "error", err,
			"email_id", e.ID, "recipient", e.Recipient, "attempts", attempts, "exhausted", exhausted)
		if markErr := s.repo.MarkAttemptFailed(e.ID, attempts, err.Error(), exhausted); markErr != nil {
			s.logger.Error("failed to record delivery failure", "error", markErr, "email_id", e.ID)
		}
		return false
	}

	if err := s.repo.MarkSent(e.ID, time.Now()); err != nil {
		s.logger.Error("failed to mark email sent", "error", err, "email_id", e.ID)
	}
	return true
}
