package notification_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/claim-management/internal/notification"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

type mockOutboxRepository struct {
	rows map[string]*notification.Email
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{rows: make(map[string]*notification.Email)}
}

func (m *mockOutboxRepository) Create(e *notification.Email) error {
	e.CreatedAt = time.Now()
	m.rows[e.ID] = e
	return nil
}

func (m *mockOutboxRepository) GetDispatchable(maxAttempts, limit int) ([]*notification.Email, error) {
	result := make([]*notification.Email, 0)
	for _, e := range m.rows {
		if e.Status == notification.StatusPending && e.Attempts < maxAttempts {
			result = append(result, e)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockOutboxRepository) MarkSent(id string, sentAt time.Time) error {
	e := m.rows[id]
	e.Status = notification.StatusSent
	e.SentAt = &sentAt
	return nil
}

func (m *mockOutboxRepository) MarkAttemptFailed(id string, attempts int, lastError string, exhausted bool) error {
	e := m.rows[id]
	e.Attempts = attempts
	e.LastError = lastError
	if exhausted {
		e.Status = notification.StatusFailed
	}
	return nil
}

type mockMailer struct {
	sent      []string
	sendError error
}

func (m *mockMailer) Send(recipient, subject, body string) error {
	if m.sendError != nil {
		return m.sendError
	}
	m.sent = append(m.sent, recipient)
	return nil
}

var _ = Describe("Outbox Service", func() {
	var (
		repo   *mockOutboxRepository
		mailer *mockMailer
		svc    *notification.Service
	)

	BeforeEach(func() {
		repo = newMockOutboxRepository()
		mailer = &mockMailer{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = notification.NewService(repo, mailer, 3, logger)
	})

	Describe("Enqueue", func() {
		It("stores a pending row without sending anything", func() {
			e, err := svc.Enqueue("pm@mail.com", "Claim #1 awaiting your approval", "body")

			Expect(err).NotTo(HaveOccurred())
			Expect(e.ID).NotTo(BeEmpty())
			Expect(e.Status).To(Equal(notification.StatusPending))
			Expect(mailer.sent).To(BeEmpty())
		})
	})

	Describe("DispatchPending", func() {
		It("delivers pending rows and marks them sent", func() {
			_, err := svc.Enqueue("pm@mail.com", "subject", "body")
			Expect(err).NotTo(HaveOccurred())

			sent, err := svc.DispatchPending(10)

			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(Equal(1))
			Expect(mailer.sent).To(ConsistOf("pm@mail.com"))
			for _, e := range repo.rows {
				Expect(e.Status).To(Equal(notification.StatusSent))
				Expect(e.SentAt).NotTo(BeNil())
			}
		})

		It("keeps a failed row pending until the attempt budget runs out", func() {
			e, err := svc.Enqueue("pm@mail.com", "subject", "body")
			Expect(err).NotTo(HaveOccurred())
			mailer.sendError = errors.New("smtp refused")

			for i := 1; i <= 2; i++ {
				_, err = svc.DispatchPending(10)
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.rows[e.ID].Status).To(Equal(notification.StatusPending))
				Expect(repo.rows[e.ID].Attempts).To(Equal(i))
			}

			_, err = svc.DispatchPending(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.rows[e.ID].Status).To(Equal(notification.StatusFailed))
			Expect(repo.rows[e.ID].Attempts).To(Equal(3))
			Expect(repo.rows[e.ID].LastError).To(Equal("smtp refused"))
		})

		It("does not pick up exhausted rows again", func() {
			e, err := svc.Enqueue("pm@mail.com", "subject", "body")
			Expect(err).NotTo(HaveOccurred())
			mailer.sendError = errors.New("smtp refused")

			for i := 0; i < 3; i++ {
				_, err = svc.DispatchPending(10)
				Expect(err).NotTo(HaveOccurred())
			}

			mailer.sendError = nil
			sent, err := svc.DispatchPending(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(Equal(0))
			Expect(repo.rows[e.ID].Status).To(Equal(notification.StatusFailed))
		})
	})
})
