package postgres

import (
	"errors"

	"github.com/frahmantamala/claim-management/internal"
	userDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/user"
	"github.com/frahmantamala/claim-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt
	u.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	var dms []*userDatamodel.User
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}

func (r *UserRepository) Update(u *user.User) error {
	dm := user.ToDataModel(u)
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":           dm.Name,
			"department":     dm.Department,
			"rank":           dm.Rank,
			"monthly_salary": dm.MonthlySalary,
			"role":           dm.Role,
			"is_active":      dm.IsActive,
		}).Error
}

// SoftDelete relies on gorm.DeletedAt on the datamodel.
func (r *UserRepository) SoftDelete(userID int64) error {
	return r.db.Delete(&userDatamodel.User{}, userID).Error
}
