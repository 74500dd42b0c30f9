package claim

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/audittrail"
	"github.com/frahmantamala/claim-management/internal/auth"
	"github.com/frahmantamala/claim-management/internal/core/events"
	"github.com/frahmantamala/claim-management/internal/enrollment"
	"github.com/frahmantamala/claim-management/internal/project"
	"github.com/frahmantamala/claim-management/internal/user"
)

type Repository interface {
	// Create persists the claim and its details in one transaction.
	Create(c *Claim) error
	GetByID(id int64) (*Claim, error)
	GetAll(filter ListFilter) ([]*Claim, error)
	// Update replaces the details and rewrites the totals and remark in one
	// transaction. The status is not touched here.
	Update(c *Claim) error
	UpdateStatus(id int64, status Status) error
	PaidBetween(from, to time.Time) ([]*Claim, error)
}

type UserDirectory interface {
	GetByID(userID int64) (*user.User, error)
}

type ProjectDirectory interface {
	GetByID(id int64) (*project.Project, error)
}

type ManagerDirectory interface {
	ProjectManager(projectID int64) (*enrollment.Enrollment, error)
}

type AuditAppender interface {
	Append(e *audittrail.Entry) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     Repository
	users    UserDirectory
	projects ProjectDirectory
	managers ManagerDirectory
	audit    AuditAppender
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	users UserDirectory,
	projects ProjectDirectory,
	managers ManagerDirectory,
	audit AuditAppender,
	eventBus EventPublisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		projects: projects,
		managers: managers,
		audit:    audit,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) Create(actor *auth.User, dto CreateClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByID(dto.ProjectID); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}

	c := &Claim{
		UserID:      actor.ID,
		ProjectID:   dto.ProjectID,
		ClaimStatus: StatusDraft,
		Remark:      dto.Remark,
		Details:     detailsFromDTO(dto.Details),
	}
	c.ComputeTotals(creator.MonthlySalary)

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create claim", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("claim created", "claim_id", c.ID, "user_id", actor.ID,
		"project_id", c.ProjectID, "total_hours", c.TotalWorkingHours, "amount", c.TotalClaimAmount)
	return c, nil
}

func (s *Service) GetByID(actor *auth.User, id int64) (*Claim, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, c) {
		return nil, internal.ErrNotAuthorized
	}
	return c, nil
}

// List scopes the result by role: staff only ever see their own claims,
// everyone else sees all claims matching the filter.
func (s *Service) List(actor *auth.User, filter ListFilter) ([]*Claim, error) {
	if actor.Role == auth.RoleStaff {
		filter.UserID = actor.ID
	}
	return s.repo.GetAll(filter)
}

func (s *Service) Update(actor *auth.User, id int64, dto UpdateClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(actor.ID) {
		return nil, internal.ErrNotClaimOwner
	}
	if c.ClaimStatus != StatusDraft {
		return nil, internal.ErrClaimNotDraft
	}

	creator, err := s.users.GetByID(c.UserID)
	if err != nil {
		return nil, err
	}

	c.Remark = dto.Remark
	c.Details = detailsFromDTO(dto.Details)
	c.ComputeTotals(creator.MonthlySalary)

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update claim", "error", err, "claim_id", id)
		return nil, err
	}

	s.appendAudit(c.ID, actor, audittrail.ActionUpdate, "")
	s.logger.Info("claim updated", "claim_id", id, "total_hours", c.TotalWorkingHours)
	return c, nil
}

// Submit moves a draft to pending approval. It fails when the project has no
// active project manager, because there would be nobody to notify or approve.
func (s *Service) Submit(ctx context.Context, actor *auth.User, id int64) (*Claim, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(actor.ID) {
		return nil, internal.ErrNotClaimOwner
	}
	if c.ClaimStatus != StatusDraft {
		return nil, internal.ErrClaimNotDraft
	}

	manager, err := s.managers.ProjectManager(c.ProjectID)
	if err != nil {
		return nil, err
	}
	managerUser, err := s.users.GetByID(manager.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(c.ID, StatusPendingApproval); err != nil {
		s.logger.Error("failed to submit claim", "error", err, "claim_id", id)
		return nil, err
	}
	c.ClaimStatus = StatusPendingApproval

	s.appendAudit(c.ID, actor, audittrail.ActionSubmit, "")
	s.publishClaimEvent(ctx, events.ClaimSubmittedEvent, c, managerUser.Email, c.Remark)
	s.logger.Info("claim submitted", "claim_id", c.ID, "manager_id", manager.UserID)
	return c, nil
}

func (s *Service) Approve(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error) {
	if !actor.CanApproveClaims() {
		return nil, internal.ErrNotAuthorized
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.ClaimStatus != StatusPendingApproval {
		return nil, internal.ErrClaimNotPending
	}

	return s.approve(ctx, actor, c, remark)
}

func (s *Service) Reject(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error) {
	if !actor.CanApproveClaims() {
		return nil, internal.ErrNotAuthorized
	}
	if remark == "" {
		return nil, internal.ErrRemarkRequired
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.ClaimStatus != StatusPendingApproval {
		return nil, internal.ErrClaimNotPending
	}

	if err := s.repo.UpdateStatus(c.ID, StatusRejected); err != nil {
		s.logger.Error("failed to reject claim", "error", err, "claim_id", id)
		return nil, err
	}
	c.ClaimStatus = StatusRejected

	s.appendAudit(c.ID, actor, audittrail.ActionReject, remark)
	s.logger.Info("claim rejected", "claim_id", c.ID, "actor_id", actor.ID)
	return c, nil
}

// Return hands a pending claim back to its creator as a draft so it can be
// corrected and resubmitted.
func (s *Service) Return(ctx context.Context, actor *auth.User, id int64, remark string) (*Claim, error) {
	if !actor.CanApproveClaims() {
		return nil, internal.ErrNotAuthorized
	}
	if remark == "" {
		return nil, internal.ErrRemarkRequired
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.ClaimStatus != StatusPendingApproval {
		return nil, internal.ErrClaimNotPending
	}

	if err := s.repo.UpdateStatus(c.ID, StatusDraft); err != nil {
		s.logger.Error("failed to return claim", "error", err, "claim_id", id)
		return nil, err
	}
	c.ClaimStatus = StatusDraft

	s.appendAudit(c.ID, actor, audittrail.ActionReturn, remark)
	if creator, err := s.users.GetByID(c.UserID); err == nil {
		s.publishClaimEvent(ctx, events.ClaimReturnedEvent, c, creator.Email, remark)
	}
	s.logger.Info("claim returned", "claim_id", c.ID, "actor_id", actor.ID)
	return c, nil
}

func (s *Service) Cancel(actor *auth.User, id int64) (*Claim, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(actor.ID) {
		return nil, internal.ErrNotClaimOwner
	}
	if c.ClaimStatus != StatusDraft {
		return nil, internal.ErrClaimNotDraft
	}

	if err := s.repo.UpdateStatus(c.ID, StatusCancelled); err != nil {
		s.logger.Error("failed to cancel claim", "error", err, "claim_id", id)
		return nil, err
	}
	c.ClaimStatus = StatusCancelled

	s.appendAudit(c.ID, actor, audittrail.ActionCancel, "")
	s.logger.Info("claim cancelled", "claim_id", c.ID)
	return c, nil
}

func (s *Service) Pay(ctx context.Context, actor *auth.User, id int64) (*Claim, error) {
	if !actor.CanPayClaims() {
		return nil, internal.ErrNotAuthorized
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.ClaimStatus != StatusApproved {
		return nil, internal.ErrClaimNotApproved
	}

	return s.pay(ctx, actor, c)
}

// ApproveBatch validates every claim before touching any of them: one claim
// outside PendingApproval aborts the whole batch.
func (s *Service) ApproveBatch(ctx context.Context, actor *auth.User, ids []int64) ([]*Claim, error) {
	if !actor.CanApproveClaims() {
		return nil, internal.ErrNotAuthorized
	}

	claims := make([]*Claim, 0, len(ids))
	for _, id := range ids {
		c, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if c.ClaimStatus != StatusPendingApproval {
			return nil, internal.ErrClaimNotPending
		}
		claims = append(claims, c)
	}

	for i, c := range claims {
		approved, err := s.approve(ctx, actor, c, "")
		if err != nil {
			s.logger.Error("batch approve stopped mid-way", "error", err,
				"claim_id", c.ID, "approved_count", i)
			return claims[:i], err
		}
		claims[i] = approved
	}
	return claims, nil
}

func (s *Service) PayBatch(ctx context.Context, actor *auth.User, ids []int64) ([]*Claim, error) {
	if !actor.CanPayClaims() {
		return nil, internal.ErrNotAuthorized
	}

	claims := make([]*Claim, 0, len(ids))
	for _, id := range ids {
		c, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if c.ClaimStatus != StatusApproved {
			return nil, internal.ErrClaimNotApproved
		}
		claims = append(claims, c)
	}

	for i, c := range claims {
		paid, err := s.pay(ctx, actor, c)
		if err != nil {
			s.logger.Error("batch payment stopped mid-way", "error", err,
				"claim_id", c.ID, "paid_count", i)
			return claims[:i], err
		}
		claims[i] = paid
	}
	return claims, nil
}

func (s *Service) approve(ctx context.Context, actor *auth.User, c *Claim, remark string) (*Claim, error) {
	if err := s.repo.UpdateStatus(c.ID, StatusApproved); err != nil {
		s.logger.Error("failed to approve claim", "error", err, "claim_id", c.ID)
		return nil, err
	}
	c.ClaimStatus = StatusApproved

	s.appendAudit(c.ID, actor, audittrail.ActionApprove, remark)
	if creator, err := s.users.GetByID(c.UserID); err == nil {
		s.publishClaimEvent(ctx, events.ClaimApprovedEvent, c, creator.Email, remark)
	}
	s.logger.Info("claim approved", "claim_id", c.ID, "actor_id", actor.ID)
	return c, nil
}

func (s *Service) pay(ctx context.Context, actor *auth.User, c *Claim) (*Claim, error) {
	if err := s.repo.UpdateStatus(c.ID, StatusPaid); err != nil {
		s.logger.Error("failed to mark claim paid", "error", err, "claim_id", c.ID)
		return nil, err
	}
	c.ClaimStatus = StatusPaid

	s.appendAudit(c.ID, actor, audittrail.ActionPaid, "")
	s.logger.Info("claim paid", "claim_id", c.ID, "actor_id", actor.ID, "amount", c.TotalClaimAmount)
	return c, nil
}

func (s *Service) canView(actor *auth.User, c *Claim) bool {
	if c.IsOwnedBy(actor.ID) {
		return true
	}
	return actor.IsAdmin() || actor.CanApproveClaims() || actor.CanPayClaims()
}

// appendAudit records the transition. A failed append is logged but never
// rolls back the transition that already happened.
func (s *Service) appendAudit(claimID int64, actor *auth.User, action, note string) {
	err := s.audit.Append(&audittrail.Entry{
		ClaimID:   claimID,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Note:      note,
	})
	if err != nil {
		s.logger.Error("failed to append audit trail", "error", err,
			"claim_id", claimID, "action", action)
	}
}

func (s *Service) publishClaimEvent(ctx context.Context, eventType string, c *Claim, recipientEmail, remark string) {
	creator, err := s.users.GetByID(c.UserID)
	if err != nil {
		s.logger.Error("failed to load claim creator for event", "error", err, "claim_id", c.ID)
		return
	}

	projectName := ""
	if p, err := s.projects.GetByID(c.ProjectID); err == nil {
		projectName = p.Name
	}

	event := events.NewClaimEvent(eventType, c.ID, creator.Name, creator.Email, recipientEmail, projectName, remark)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish claim event", "error", err,
			"event_type", eventType, "claim_id", c.ID)
	}
}

func detailsFromDTO(dtos []DetailDTO) []Detail {
	details := make([]Detail, len(dtos))
	for i, d := range dtos {
		details[i] = Detail{
			FromTime: d.FromTime,
			ToTime:   d.ToTime,
			Remark:   d.Remark,
		}
	}
	return details
}
