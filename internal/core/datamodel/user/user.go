package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            int64          `gorm:"primaryKey"`
	Email         string         `gorm:"column:email;uniqueIndex;not null"`
	Name          string         `gorm:"column:name;not null"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Department    string         `gorm:"column:department"`
	Rank          string         `gorm:"column:rank"`
	MonthlySalary int64          `gorm:"column:monthly_salary;not null;default:0"`
	Role          string         `gorm:"column:role;not null;default:STAFF"`
	IsActive      bool           `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
