package postgres

import (
	"github.com/frahmantamala/claim-management/internal/audittrail"
	auditDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/audittrail"
	"gorm.io/gorm"
)

// AuditTrailRepository implements audittrail.Repository using GORM
type AuditTrailRepository struct {
	db *gorm.DB
}

func NewAuditTrailRepository(db *gorm.DB) audittrail.Repository {
	return &AuditTrailRepository{db: db}
}

func (r *AuditTrailRepository) Append(e *audittrail.Entry) error {
	dm := audittrail.ToDataModel(e)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	e.ID = dm.ID
	e.ActionDate = dm.ActionDate
	return nil
}

func (r *AuditTrailRepository) GetByClaim(claimID int64) ([]*audittrail.Entry, error) {
	var dms []*auditDatamodel.AuditTrail
	err := r.db.Where("claim_id = ?", claimID).
		Order("action_date DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return audittrail.FromDataModelSlice(dms), nil
}

func (r *AuditTrailRepository) GetAll(limit, offset int) ([]*audittrail.Entry, error) {
	var dms []*auditDatamodel.AuditTrail
	err := r.db.Order("action_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return audittrail.FromDataModelSlice(dms), nil
}
