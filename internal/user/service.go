package user

import (
	"log/slog"

	"github.com/frahmantamala/claim-management/internal"
)

type Repository interface {
	Create(u *User) error
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll(limit, offset int) ([]*User, error)
	Update(u *User) error
	SoftDelete(userID int64) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	u := &User{
		Email:         dto.Email,
		Name:          dto.Name,
		PasswordHash:  hash,
		Department:    dto.Department,
		Rank:          dto.Rank,
		MonthlySalary: dto.MonthlySalary,
		Role:          dto.Role,
		IsActive:      true,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetAll(limit, offset int) ([]*User, error) {
	return s.repo.GetAll(limit, offset)
}

func (s *Service) Update(userID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	u.Name = dto.Name
	u.Department = dto.Department
	u.Rank = dto.Rank
	u.MonthlySalary = dto.MonthlySalary
	u.Role = dto.Role
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return u, nil
}

func (s *Service) Delete(userID int64) error {
	if _, err := s.repo.GetByID(userID); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(userID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user soft-deleted", "user_id", userID)
	return nil
}
