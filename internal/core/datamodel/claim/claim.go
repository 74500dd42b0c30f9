package claim

import "time"

type ClaimRequest struct {
	ID                int64     `gorm:"primaryKey"`
	UserID            int64     `gorm:"column:user_id;not null;index"`
	ProjectID         int64     `gorm:"column:project_id;not null;index"`
	ClaimStatus       string    `gorm:"column:claim_status;not null;default:Draft"`
	TotalWorkingHours float64   `gorm:"column:total_working_hours;not null;default:0"`
	TotalClaimAmount  int64     `gorm:"column:total_claim_amount;not null;default:0"`
	Remark            string    `gorm:"column:remark"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Details []ClaimDetail `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE"`
}

func (ClaimRequest) TableName() string {
	return "claim_requests"
}

type ClaimDetail struct {
	ID       int64     `gorm:"primaryKey"`
	ClaimID  int64     `gorm:"column:claim_id;not null;index"`
	FromTime time.Time `gorm:"column:from_time;not null"`
	ToTime   time.Time `gorm:"column:to_time;not null"`
	Remark   string    `gorm:"column:remark"`
}

func (ClaimDetail) TableName() string {
	return "claim_details"
}
