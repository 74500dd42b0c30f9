package claim_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/audittrail"
	"github.com/frahmantamala/claim-management/internal/auth"
	"github.com/frahmantamala/claim-management/internal/claim"
	"github.com/frahmantamala/claim-management/internal/core/events"
	"github.com/frahmantamala/claim-management/internal/enrollment"
	"github.com/frahmantamala/claim-management/internal/project"
	"github.com/frahmantamala/claim-management/internal/user"
)

func TestClaimService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Claim Service Suite")
}

// Mock repository for testing
type mockClaimRepository struct {
	claims            map[int64]*claim.Claim
	createError       error
	getError          error
	updateError       error
	updateStatusError error
	nextID            int64
}

func newMockClaimRepository() *mockClaimRepository {
	return &mockClaimRepository{
		claims: make(map[int64]*claim.Claim),
		nextID: 1,
	}
}

func (m *mockClaimRepository) Create(c *claim.Claim) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.claims[c.ID] = c
	return nil
}

func (m *mockClaimRepository) GetByID(id int64) (*claim.Claim, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	c, exists := m.claims[id]
	if !exists {
		return nil, internal.ErrClaimNotFound
	}
	return c, nil
}

func (m *mockClaimRepository) GetAll(filter claim.ListFilter) ([]*claim.Claim, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*claim.Claim, 0)
	for _, c := range m.claims {
		if filter.UserID > 0 && c.UserID != filter.UserID {
			continue
		}
		if filter.ProjectID > 0 && c.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && string(c.ClaimStatus) != filter.Status {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockClaimRepository) Update(c *claim.Claim) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.claims[c.ID] = c
	return nil
}

func (m *mockClaimRepository) UpdateStatus(id int64, status claim.Status) error {
	if m.updateStatusError != nil {
		return m.updateStatusError
	}
	c, exists := m.claims[id]
	if !exists {
		return internal.ErrClaimNotFound
	}
	c.ClaimStatus = status
	return nil
}

func (m *mockClaimRepository) PaidBetween(from, to time.Time) ([]*claim.Claim, error) {
	result := make([]*claim.Claim, 0)
	for _, c := range m.claims {
		if c.ClaimStatus == claim.StatusPaid && !c.UpdatedAt.Before(from) && c.UpdatedAt.Before(to) {
			result = append(result, c)
		}
	}
	return result, nil
}

type mockUserDirectory struct {
	users    map[int64]*user.User
	getError error
}

func (m *mockUserDirectory) GetByID(userID int64) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, exists := m.users[userID]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

type mockProjectDirectory struct {
	projects map[int64]*project.Project
}

func (m *mockProjectDirectory) GetByID(id int64) (*project.Project, error) {
	p, exists := m.projects[id]
	if !exists {
		return nil, internal.ErrProjectNotFound
	}
	return p, nil
}

type mockManagerDirectory struct {
	managers map[int64]*enrollment.Enrollment
}

func (m *mockManagerDirectory) ProjectManager(projectID int64) (*enrollment.Enrollment, error) {
	e, exists := m.managers[projectID]
	if !exists {
		return nil, internal.ErrManagerNotFound
	}
	return e, nil
}

type mockAuditAppender struct {
	entries     []*audittrail.Entry
	appendError error
}

func (m *mockAuditAppender) Append(e *audittrail.Entry) error {
	if m.appendError != nil {
		return m.appendError
	}
	m.entries = append(m.entries, e)
	return nil
}

type mockEventPublisher struct {
	published []events.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Claim Service", func() {
	var (
		repo     *mockClaimRepository
		users    *mockUserDirectory
		projects *mockProjectDirectory
		managers *mockManagerDirectory
		audit    *mockAuditAppender
		eventBus *mockEventPublisher
		svc      *claim.Service

		staff    *auth.User
		approver *auth.User
		finance  *auth.User
		ctx      context.Context
	)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		repo = newMockClaimRepository()
		users = &mockUserDirectory{users: map[int64]*user.User{
			1: {ID: 1, Email: "staff@mail.com", Name: "Sari Staff", MonthlySalary: 19200, Role: auth.RoleStaff},
			2: {ID: 2, Email: "approver@mail.com", Name: "Andi Approver", MonthlySalary: 28800, Role: auth.RoleApprover},
			3: {ID: 3, Email: "finance@mail.com", Name: "Fina Finance", MonthlySalary: 28800, Role: auth.RoleFinance},
		}}
		projects = &mockProjectDirectory{projects: map[int64]*project.Project{
			10: {ID: 10, Code: "PRJ-001", Name: "Internal Portal"},
		}}
		managers = &mockManagerDirectory{managers: map[int64]*enrollment.Enrollment{
			10: {ID: 100, ProjectID: 10, UserID: 2, ProjectRole: enrollment.RoleProjectManager, EnrollStatus: enrollment.EnrollStatusActive},
		}}
		audit = &mockAuditAppender{}
		eventBus = &mockEventPublisher{}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = claim.NewService(repo, users, projects, managers, audit, eventBus, logger)

		staff = &auth.User{ID: 1, Email: "staff@mail.com", Name: "Sari Staff", Role: auth.RoleStaff}
		approver = &auth.User{ID: 2, Email: "approver@mail.com", Name: "Andi Approver", Role: auth.RoleApprover}
		finance = &auth.User{ID: 3, Email: "finance@mail.com", Name: "Fina Finance", Role: auth.RoleFinance}
		ctx = context.Background()
	})

	eightHourDTO := func() claim.CreateClaimDTO {
		return claim.CreateClaimDTO{
			ProjectID: 10,
			Remark:    "overtime for release",
			Details: []claim.DetailDTO{
				{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(13 * time.Hour)},
				{FromTime: day.Add(14 * time.Hour), ToTime: day.Add(18 * time.Hour)},
			},
		}
	}

	createDraft := func() *claim.Claim {
		c, err := svc.Create(staff, eightHourDTO())
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	submitClaim := func() *claim.Claim {
		c := createDraft()
		submitted, err := svc.Submit(ctx, staff, c.ID)
		Expect(err).NotTo(HaveOccurred())
		return submitted
	}

	Describe("Create", func() {
		It("computes hours and amount from the creator's salary", func() {
			c, err := svc.Create(staff, eightHourDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(c.ClaimStatus).To(Equal(claim.StatusDraft))
			Expect(c.TotalWorkingHours).To(Equal(8.0))
			// 8h at 19200/month over 192 working hours = 800
			Expect(c.TotalClaimAmount).To(Equal(int64(800)))
		})

		It("rejects a detail with a non-positive interval", func() {
			dto := eightHourDTO()
			dto.Details[0].ToTime = dto.Details[0].FromTime

			_, err := svc.Create(staff, dto)

			Expect(err).To(MatchError(internal.ErrInvalidInterval))
			Expect(repo.claims).To(BeEmpty())
		})

		It("rejects a detail whose end precedes its start", func() {
			dto := eightHourDTO()
			dto.Details[1].ToTime = dto.Details[1].FromTime.Add(-2 * time.Hour)

			_, err := svc.Create(staff, dto)

			Expect(err).To(MatchError(internal.ErrInvalidInterval))
			Expect(repo.claims).To(BeEmpty())
		})

		It("rejects an unknown project", func() {
			dto := eightHourDTO()
			dto.ProjectID = 999

			_, err := svc.Create(staff, dto)

			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})

		It("requires at least one detail", func() {
			dto := eightHourDTO()
			dto.Details = nil

			_, err := svc.Create(staff, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Submit", func() {
		It("moves a draft to pending approval and notifies the project manager", func() {
			c := createDraft()

			submitted, err := svc.Submit(ctx, staff, c.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(submitted.ClaimStatus).To(Equal(claim.StatusPendingApproval))
			Expect(audit.entries).To(HaveLen(1))
			Expect(audit.entries[0].Action).To(Equal(audittrail.ActionSubmit))
			Expect(eventBus.published).To(HaveLen(1))
			Expect(eventBus.published[0].EventType()).To(Equal(events.ClaimSubmittedEvent))
			payload := eventBus.published[0].Payload().(map[string]interface{})
			Expect(payload["recipient_email"]).To(Equal("approver@mail.com"))
		})

		It("fails when the project has no active project manager", func() {
			delete(managers.managers, int64(10))
			c := createDraft()

			_, err := svc.Submit(ctx, staff, c.ID)

			Expect(err).To(MatchError(internal.ErrManagerNotFound))
			Expect(err.Error()).To(ContainSubstring("Project manager not found"))
			Expect(repo.claims[c.ID].ClaimStatus).To(Equal(claim.StatusDraft))
			Expect(audit.entries).To(BeEmpty())
		})

		It("only the creator can submit", func() {
			c := createDraft()

			_, err := svc.Submit(ctx, approver, c.ID)

			Expect(err).To(MatchError(internal.ErrNotClaimOwner))
		})

		It("cannot submit a claim that is not a draft", func() {
			c := submitClaim()

			_, err := svc.Submit(ctx, staff, c.ID)

			Expect(err).To(MatchError(internal.ErrClaimNotDraft))
		})
	})

	Describe("Approve", func() {
		It("approves a pending claim and records the audit entry", func() {
			c := submitClaim()

			approved, err := svc.Approve(ctx, approver, c.ID, "looks good")

			Expect(err).NotTo(HaveOccurred())
			Expect(approved.ClaimStatus).To(Equal(claim.StatusApproved))
			Expect(audit.entries).To(HaveLen(2))
			Expect(audit.entries[1].Action).To(Equal(audittrail.ActionApprove))
			Expect(audit.entries[1].ActorID).To(Equal(approver.ID))
		})

		It("fails when the claim is not pending approval", func() {
			c := createDraft()

			_, err := svc.Approve(ctx, approver, c.ID, "")

			Expect(err).To(MatchError(internal.ErrClaimNotPending))
			Expect(err.Error()).To(Equal("Claim status must be Pending Approval"))
			Expect(repo.claims[c.ID].ClaimStatus).To(Equal(claim.StatusDraft))
		})

		It("denies staff", func() {
			c := submitClaim()

			_, err := svc.Approve(ctx, staff, c.ID, "")

			Expect(err).To(MatchError(internal.ErrNotAuthorized))
			Expect(err.Error()).To(Equal("not authorized"))
			Expect(repo.claims[c.ID].ClaimStatus).To(Equal(claim.StatusPendingApproval))
		})

		It("allows finance to approve", func() {
			c := submitClaim()

			approved, err := svc.Approve(ctx, finance, c.ID, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(approved.ClaimStatus).To(Equal(claim.StatusApproved))
		})
	})

	Describe("Reject", func() {
		It("requires a remark", func() {
			c := submitClaim()

			_, err := svc.Reject(ctx, approver, c.ID, "")

			Expect(err).To(MatchError(internal.ErrRemarkRequired))
			Expect(repo.claims[c.ID].ClaimStatus).To(Equal(claim.StatusPendingApproval))
		})

		It("rejects a pending claim terminally", func() {
			c := submitClaim()

			rejected, err := svc.Reject(ctx, approver, c.ID, "duplicate entry")

			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.ClaimStatus).To(Equal(claim.StatusRejected))
			Expect(audit.entries[1].Note).To(Equal("duplicate entry"))
		})
	})

	Describe("Return", func() {
		It("puts the claim back in draft and notifies the creator", func() {
			c := submitClaim()

			returned, err := svc.Return(ctx, approver, c.ID, "missing receipts")

			Expect(err).NotTo(HaveOccurred())
			Expect(returned.ClaimStatus).To(Equal(claim.StatusDraft))
			Expect(eventBus.published).To(HaveLen(2))
			Expect(eventBus.published[1].EventType()).To(Equal(events.ClaimReturnedEvent))
			payload := eventBus.published[1].Payload().(map[string]interface{})
			Expect(payload["recipient_email"]).To(Equal("staff@mail.com"))
		})

		It("a returned claim can be corrected and resubmitted", func() {
			c := submitClaim()
			_, err := svc.Return(ctx, approver, c.ID, "missing receipts")
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(staff, c.ID, claim.UpdateClaimDTO{
				Remark: "receipts attached",
				Details: []claim.DetailDTO{
					{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(13 * time.Hour)},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			resubmitted, err := svc.Submit(ctx, staff, c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resubmitted.ClaimStatus).To(Equal(claim.StatusPendingApproval))
			Expect(resubmitted.TotalWorkingHours).To(Equal(4.0))
			Expect(resubmitted.TotalClaimAmount).To(Equal(int64(400)))
		})

		It("requires a remark", func() {
			c := submitClaim()

			_, err := svc.Return(ctx, approver, c.ID, "")

			Expect(err).To(MatchError(internal.ErrRemarkRequired))
		})
	})

	Describe("Cancel", func() {
		It("cancels a draft", func() {
			c := createDraft()

			cancelled, err := svc.Cancel(staff, c.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(cancelled.ClaimStatus).To(Equal(claim.StatusCancelled))
		})

		It("cannot cancel once submitted", func() {
			c := submitClaim()

			_, err := svc.Cancel(staff, c.ID)

			Expect(err).To(MatchError(internal.ErrClaimNotDraft))
		})
	})

	Describe("Pay", func() {
		approvedClaim := func() *claim.Claim {
			c := submitClaim()
			approved, err := svc.Approve(ctx, approver, c.ID, "")
			Expect(err).NotTo(HaveOccurred())
			return approved
		}

		It("marks an approved claim as paid", func() {
			c := approvedClaim()

			paid, err := svc.Pay(ctx, finance, c.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(paid.ClaimStatus).To(Equal(claim.StatusPaid))
			Expect(audit.entries[2].Action).To(Equal(audittrail.ActionPaid))
		})

		It("fails when the claim is not approved", func() {
			c := submitClaim()

			_, err := svc.Pay(ctx, finance, c.ID)

			Expect(err).To(MatchError(internal.ErrClaimNotApproved))
		})

		It("denies approvers without the finance role", func() {
			c := approvedClaim()

			_, err := svc.Pay(ctx, approver, c.ID)

			Expect(err).To(MatchError(internal.ErrNotAuthorized))
			Expect(repo.claims[c.ID].ClaimStatus).To(Equal(claim.StatusApproved))
		})
	})

	Describe("Update", func() {
		It("recomputes the totals from the new details", func() {
			c := createDraft()

			updated, err := svc.Update(staff, c.ID, claim.UpdateClaimDTO{
				Remark: "half day only",
				Details: []claim.DetailDTO{
					{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(13 * time.Hour)},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TotalWorkingHours).To(Equal(4.0))
			Expect(updated.TotalClaimAmount).To(Equal(int64(400)))
		})

		It("rejects replacement details with a non-positive interval", func() {
			c := createDraft()

			_, err := svc.Update(staff, c.ID, claim.UpdateClaimDTO{
				Details: []claim.DetailDTO{
					{FromTime: day.Add(13 * time.Hour), ToTime: day.Add(9 * time.Hour)},
				},
			})

			Expect(err).To(MatchError(internal.ErrInvalidInterval))
			Expect(repo.claims[c.ID].TotalWorkingHours).To(Equal(8.0))
		})

		It("only the creator can update", func() {
			c := createDraft()

			_, err := svc.Update(approver, c.ID, claim.UpdateClaimDTO{
				Details: []claim.DetailDTO{
					{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(10 * time.Hour)},
				},
			})

			Expect(err).To(MatchError(internal.ErrNotClaimOwner))
		})

		It("cannot update once submitted", func() {
			c := submitClaim()

			_, err := svc.Update(staff, c.ID, claim.UpdateClaimDTO{
				Details: []claim.DetailDTO{
					{FromTime: day.Add(9 * time.Hour), ToTime: day.Add(10 * time.Hour)},
				},
			})

			Expect(err).To(MatchError(internal.ErrClaimNotDraft))
		})
	})

	Describe("ApproveBatch", func() {
		It("approves every claim when all are pending", func() {
			first := submitClaim()
			second := submitClaim()

			approved, err := svc.ApproveBatch(ctx, approver, []int64{first.ID, second.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(approved).To(HaveLen(2))
			for _, c := range approved {
				Expect(c.ClaimStatus).To(Equal(claim.StatusApproved))
			}
		})

		It("aborts the whole batch when one claim is not pending", func() {
			pending := submitClaim()
			draft := createDraft()

			_, err := svc.ApproveBatch(ctx, approver, []int64{pending.ID, draft.ID})

			Expect(err).To(MatchError(internal.ErrClaimNotPending))
			Expect(repo.claims[pending.ID].ClaimStatus).To(Equal(claim.StatusPendingApproval))
			Expect(repo.claims[draft.ID].ClaimStatus).To(Equal(claim.StatusDraft))
		})
	})

	Describe("PayBatch", func() {
		It("aborts the whole batch when one claim is not approved", func() {
			c := submitClaim()
			approved, err := svc.Approve(ctx, approver, c.ID, "")
			Expect(err).NotTo(HaveOccurred())
			pending := submitClaim()

			_, err = svc.PayBatch(ctx, finance, []int64{approved.ID, pending.ID})

			Expect(err).To(MatchError(internal.ErrClaimNotApproved))
			Expect(repo.claims[approved.ID].ClaimStatus).To(Equal(claim.StatusApproved))
		})
	})

	Describe("List", func() {
		It("scopes staff to their own claims", func() {
			mine := createDraft()
			other := &claim.Claim{UserID: 99, ProjectID: 10, ClaimStatus: claim.StatusDraft}
			Expect(repo.Create(other)).To(Succeed())

			claims, err := svc.List(staff, claim.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(1))
			Expect(claims[0].ID).To(Equal(mine.ID))
		})

		It("lets approvers see everything", func() {
			createDraft()
			other := &claim.Claim{UserID: 99, ProjectID: 10, ClaimStatus: claim.StatusDraft}
			Expect(repo.Create(other)).To(Succeed())

			claims, err := svc.List(approver, claim.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(claims).To(HaveLen(2))
		})
	})

	Describe("GetByID", func() {
		It("denies a staff member reading someone else's claim", func() {
			other := &claim.Claim{UserID: 99, ProjectID: 10, ClaimStatus: claim.StatusDraft}
			Expect(repo.Create(other)).To(Succeed())

			_, err := svc.GetByID(staff, other.ID)

			Expect(err).To(MatchError(internal.ErrNotAuthorized))
		})
	})
})

var _ = Describe("Status", func() {
	It("allows only the documented transitions", func() {
		Expect(claim.StatusDraft.CanTransition(claim.StatusPendingApproval)).To(BeTrue())
		Expect(claim.StatusDraft.CanTransition(claim.StatusCancelled)).To(BeTrue())
		Expect(claim.StatusDraft.CanTransition(claim.StatusApproved)).To(BeFalse())
		Expect(claim.StatusPendingApproval.CanTransition(claim.StatusApproved)).To(BeTrue())
		Expect(claim.StatusPendingApproval.CanTransition(claim.StatusRejected)).To(BeTrue())
		Expect(claim.StatusPendingApproval.CanTransition(claim.StatusDraft)).To(BeTrue())
		Expect(claim.StatusApproved.CanTransition(claim.StatusPaid)).To(BeTrue())
	})

	It("treats rejected, cancelled and paid as terminal", func() {
		Expect(claim.StatusRejected.IsTerminal()).To(BeTrue())
		Expect(claim.StatusCancelled.IsTerminal()).To(BeTrue())
		Expect(claim.StatusPaid.IsTerminal()).To(BeTrue())
		Expect(claim.StatusDraft.IsTerminal()).To(BeFalse())
	})
})
