package project

import (
	"errors"
	"log/slog"

	"github.com/frahmantamala/claim-management/internal"
)

type Repository interface {
	Create(p *Project) error
	GetByID(id int64) (*Project, error)
	GetByCode(code string) (*Project, error)
	GetAll(limit, offset int) ([]*Project, error)
	Update(p *Project) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCode(dto.Code); err == nil && existing != nil {
		return nil, internal.ErrDuplicateProjectCode
	}

	p := &Project{
		Code:          dto.Code,
		Name:          dto.Name,
		Budget:        dto.Budget,
		ProjectStatus: StatusActive,
		StartDate:     dto.StartDate,
		EndDate:       dto.EndDate,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create project", "error", err, "code", dto.Code)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "code", p.Code)
	return p, nil
}

func (s *Service) GetByID(id int64) (*Project, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetAll(limit, offset int) ([]*Project, error) {
	return s.repo.GetAll(limit, offset)
}

// Exists reports whether a project with the given id is known.
func (s *Service) Exists(id int64) (bool, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, internal.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) Update(id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Name = dto.Name
	p.Budget = dto.Budget
	p.ProjectStatus = dto.ProjectStatus
	p.StartDate = dto.StartDate
	p.EndDate = dto.EndDate

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project updated", "project_id", id)
	return p, nil
}
