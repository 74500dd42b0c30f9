package audittrail

import "time"

// AuditTrail rows are append-only: there is deliberately no update or
// delete path anywhere in the codebase.
type AuditTrail struct {
	ID         int64     `gorm:"primaryKey"`
	ClaimID    int64     `gorm:"column:claim_id;not null;index"`
	ActorID    int64     `gorm:"column:actor_id;not null"`
	ActorName  string    `gorm:"column:actor_name"`
	Action     string    `gorm:"column:action;not null"`
	Note       string    `gorm:"column:note"`
	ActionDate time.Time `gorm:"column:action_date;autoCreateTime"`
}

func (AuditTrail) TableName() string {
	return "audit_trails"
}
