package postgres

import (
	"errors"

	"github.com/frahmantamala/claim-management/internal"
	enrollmentDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/claim-management/internal/enrollment"
	"gorm.io/gorm"
)

// EnrollmentRepository implements enrollment.Repository using GORM
type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) enrollment.Repository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(e *enrollment.Enrollment) error {
	dm := enrollment.ToDataModel(e)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	e.ID = dm.ID
	e.CreatedAt = dm.CreatedAt
	e.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *EnrollmentRepository) GetByID(id int64) (*enrollment.Enrollment, error) {
	var dm enrollmentDatamodel.ProjectEnrollment
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment.FromDataModel(&dm), nil
}

func (r *EnrollmentRepository) GetByProject(projectID int64) ([]*enrollment.Enrollment, error) {
	var dms []*enrollmentDatamodel.ProjectEnrollment
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return enrollment.FromDataModelSlice(dms), nil
}

func (r *EnrollmentRepository) GetByUser(userID int64) ([]*enrollment.Enrollment, error) {
	var dms []*enrollmentDatamodel.ProjectEnrollment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return enrollment.FromDataModelSlice(dms), nil
}

func (r *EnrollmentRepository) FindRoleHolder(projectID int64, role string, excludeID int64) (*enrollment.Enrollment, error) {
	q := r.db.Where("project_id = ? AND project_role = ? AND enroll_status = ?",
		projectID, role, enrollment.EnrollStatusActive)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var dm enrollmentDatamodel.ProjectEnrollment
	err := q.First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return enrollment.FromDataModel(&dm), nil
}

func (r *EnrollmentRepository) Update(e *enrollment.Enrollment) error {
	return r.db.Model(&enrollmentDatamodel.ProjectEnrollment{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"project_role":  e.ProjectRole,
			"enroll_status": e.EnrollStatus,
		}).Error
}

func (r *EnrollmentRepository) Delete(id int64) error {
	return r.db.Delete(&enrollmentDatamodel.ProjectEnrollment{}, id).Error
}
