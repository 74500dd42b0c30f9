package enrollment

import (
	"log/slog"

	"github.com/frahmantamala/claim-management/internal"
)

type Repository interface {
	Create(e *Enrollment) error
	GetByID(id int64) (*Enrollment, error)
	GetByProject(projectID int64) ([]*Enrollment, error)
	GetByUser(userID int64) ([]*Enrollment, error)
	// FindRoleHolder returns the active enrollment holding role on the
	// project, excluding the given enrollment id (0 to exclude nothing).
	FindRoleHolder(projectID int64, role string, excludeID int64) (*Enrollment, error)
	Update(e *Enrollment) error
	Delete(id int64) error
}

type ProjectChecker interface {
	Exists(projectID int64) (bool, error)
}

type Service struct {
	repo     Repository
	projects ProjectChecker
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger,
	}
}

func (s *Service) Create(dto CreateEnrollmentDTO) (*Enrollment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.projects.Exists(dto.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrProjectNotFound
	}

	// The migration also carries partial unique indexes for these roles, so
	// a concurrent writer racing past this check still fails on insert.
	if err := s.checkSingleHolder(dto.ProjectID, dto.ProjectRole, 0); err != nil {
		return nil, err
	}

	e := &Enrollment{
		ProjectID:    dto.ProjectID,
		UserID:       dto.UserID,
		ProjectRole:  dto.ProjectRole,
		EnrollStatus: EnrollStatusActive,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create enrollment", "error", err,
			"project_id", dto.ProjectID, "user_id", dto.UserID, "role", dto.ProjectRole)
		return nil, err
	}

	s.logger.Info("enrollment created", "enrollment_id", e.ID,
		"project_id", e.ProjectID, "user_id", e.UserID, "role", e.ProjectRole)
	return e, nil
}

func (s *Service) GetByID(id int64) (*Enrollment, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByProject(projectID int64) ([]*Enrollment, error) {
	return s.repo.GetByProject(projectID)
}

func (s *Service) GetByUser(userID int64) ([]*Enrollment, error) {
	return s.repo.GetByUser(userID)
}

func (s *Service) Update(id int64, dto UpdateEnrollmentDTO) (*Enrollment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.EnrollStatus == EnrollStatusActive {
		if err := s.checkSingleHolder(e.ProjectID, dto.ProjectRole, e.ID); err != nil {
			return nil, err
		}
	}

	e.ProjectRole = dto.ProjectRole
	e.EnrollStatus = dto.EnrollStatus

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update enrollment", "error", err, "enrollment_id", id)
		return nil, err
	}

	s.logger.Info("enrollment updated", "enrollment_id", id, "role", e.ProjectRole, "status", e.EnrollStatus)
	return e, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete enrollment", "error", err, "enrollment_id", id)
		return err
	}

	s.logger.Info("enrollment deleted", "enrollment_id", id)
	return nil
}

// ProjectManager returns the active ProjectManager enrollment for a project.
func (s *Service) ProjectManager(projectID int64) (*Enrollment, error) {
	holder, err := s.repo.FindRoleHolder(projectID, RoleProjectManager, 0)
	if err != nil {
		return nil, err
	}
	if holder == nil {
		return nil, internal.ErrManagerNotFound
	}
	return holder, nil
}

func (s *Service) checkSingleHolder(projectID int64, role string, excludeID int64) error {
	if !SingleHolderRole(role) {
		return nil
	}

	holder, err := s.repo.FindRoleHolder(projectID, role, excludeID)
	if err != nil {
		return err
	}
	if holder == nil {
		return nil
	}

	if role == RoleProjectManager {
		return internal.ErrDuplicateProjectManager
	}
	return internal.ErrDuplicateQualityAssure
}
