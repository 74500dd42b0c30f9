package audittrail

import "log/slog"

// Repository is append-and-read only. There is no update or delete on
// purpose: audit rows are a compliance log, not user data.
type Repository interface {
	Append(e *Entry) error
	GetByClaim(claimID int64) ([]*Entry, error)
	GetAll(limit, offset int) ([]*Entry, error)
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

func (s *Service) GetByClaim(claimID int64) ([]*Entry, error) {
	return s.repo.GetByClaim(claimID)
}

func (s *Service) GetAll(limit, offset int) ([]*Entry, error) {
	return s.repo.GetAll(limit, offset)
}
