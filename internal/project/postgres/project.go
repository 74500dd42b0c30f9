package postgres

import (
	"errors"

	"github.com/frahmantamala/claim-management/internal"
	projectDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/project"
	"github.com/frahmantamala/claim-management/internal/project"
	"gorm.io/gorm"
)

// ProjectRepository implements project.Repository using GORM
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	dm := project.ToDataModel(p)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	p.ID = dm.ID
	p.CreatedAt = dm.CreatedAt
	p.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var dm projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}
	return project.FromDataModel(&dm), nil
}

func (r *ProjectRepository) GetByCode(code string) (*project.Project, error) {
	var dm projectDatamodel.Project
	err := r.db.Where("code = ?", code).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}
	return project.FromDataModel(&dm), nil
}

func (r *ProjectRepository) GetAll(limit, offset int) ([]*project.Project, error) {
	var dms []*projectDatamodel.Project
	err := r.db.Order("code ASC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return project.FromDataModelSlice(dms), nil
}

func (r *ProjectRepository) Update(p *project.Project) error {
	return r.db.Model(&projectDatamodel.Project{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"budget":         p.Budget,
			"project_status": p.ProjectStatus,
			"start_date":     p.StartDate,
			"end_date":       p.EndDate,
		}).Error
}
