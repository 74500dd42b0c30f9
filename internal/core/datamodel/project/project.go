package project

import "time"

type Project struct {
	ID            int64     `gorm:"primaryKey"`
	Code          string    `gorm:"column:code;uniqueIndex;not null"`
	Name          string    `gorm:"column:name;not null"`
	Budget        int64     `gorm:"column:budget;not null;default:0"`
	ProjectStatus string    `gorm:"column:project_status;not null;default:active"`
	StartDate     time.Time `gorm:"column:start_date;type:date"`
	EndDate       time.Time `gorm:"column:end_date;type:date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
