package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/claim"
	claimDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/claim"
	"gorm.io/gorm"
)

// ClaimRepository implements claim.Repository using GORM
type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) claim.Repository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(c *claim.Claim) error {
	dm := claim.ToDataModel(c)
	// Details ride along in the same insert, GORM cascades the association
	// inside one transaction.
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	*c = *claim.FromDataModel(dm)
	return nil
}

func (r *ClaimRepository) GetByID(id int64) (*claim.Claim, error) {
	var dm claimDatamodel.ClaimRequest
	err := r.db.Preload("Details").First(&dm, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClaimNotFound
		}
		return nil, err
	}
	return claim.FromDataModel(&dm), nil
}

func (r *ClaimRepository) GetAll(filter claim.ListFilter) ([]*claim.Claim, error) {
	query := r.db.Model(&claimDatamodel.ClaimRequest{}).Preload("Details")

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProjectID > 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		query = query.Where("claim_status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dms []*claimDatamodel.ClaimRequest
	if err := query.Order("created_at DESC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(dms), nil
}

// Update rewrites the remark and totals and replaces the detail rows. The
// whole rewrite runs in one transaction so a reader never sees a claim with
// half its details swapped.
func (r *ClaimRepository) Update(c *claim.Claim) error {
	dm := claim.ToDataModel(c)
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&claimDatamodel.ClaimRequest{}).
			Where("id = ?", dm.ID).
			Updates(map[string]interface{}{
				"remark":              dm.Remark,
				"total_working_hours": dm.TotalWorkingHours,
				"total_claim_amount":  dm.TotalClaimAmount,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("claim_id = ?", dm.ID).Delete(&claimDatamodel.ClaimDetail{}).Error; err != nil {
			return err
		}
		for i := range dm.Details {
			dm.Details[i].ID = 0
			dm.Details[i].ClaimID = dm.ID
		}
		if len(dm.Details) > 0 {
			if err := tx.Create(&dm.Details).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClaimRepository) UpdateStatus(id int64, status claim.Status) error {
	result := r.db.Model(&claimDatamodel.ClaimRequest{}).
		Where("id = ?", id).
		Update("claim_status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrClaimNotFound
	}
	return nil
}

func (r *ClaimRepository) PaidBetween(from, to time.Time) ([]*claim.Claim, error) {
	var dms []*claimDatamodel.ClaimRequest
	err := r.db.Preload("Details").
		Where("claim_status = ?", string(claim.StatusPaid)).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Order("updated_at ASC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(dms), nil
}
