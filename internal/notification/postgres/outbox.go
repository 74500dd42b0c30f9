package postgres

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/claim-management/internal/notification"
	"gorm.io/gorm"
)

// OutboxRepository implements notification.Repository using GORM
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) notification.Repository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Create(e *notification.Email) error {
	dm := notification.ToDataModel(e)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	e.CreatedAt = dm.CreatedAt
	return nil
}

func (r *OutboxRepository) GetDispatchable(maxAttempts, limit int) ([]*notification.Email, error) {
	var dms []*notificationDatamodel.EmailOutbox
	err := r.db.Where("status = ? AND attempts < ?", notification.StatusPending, maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return notification.FromDataModelSlice(dms), nil
}

func (r *OutboxRepository) MarkSent(id string, sentAt time.Time) error {
	return r.db.Model(&notificationDatamodel.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  notification.StatusSent,
			"sent_at": sentAt,
		}).Error
}

func (r *OutboxRepository) MarkAttemptFailed(id string, attempts int, lastError string, exhausted bool) error {
	status := notification.StatusPending
	if exhausted {
		status = notification.StatusFailed
	}
	return r.db.Model(&notificationDatamodel.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}
