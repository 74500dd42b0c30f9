package enrollment

import "time"

type ProjectEnrollment struct {
	ID           int64     `gorm:"primaryKey"`
	ProjectID    int64     `gorm:"column:project_id;not null;index"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	ProjectRole  string    `gorm:"column:project_role;not null"`
	EnrollStatus string    `gorm:"column:enroll_status;not null;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProjectEnrollment) TableName() string {
	return "project_enrollments"
}
