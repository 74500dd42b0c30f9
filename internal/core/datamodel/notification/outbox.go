package notification

import "time"

type EmailOutbox struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	Recipient string     `gorm:"column:recipient;not null"`
	Subject   string     `gorm:"column:subject;not null"`
	Body      string     `gorm:"column:body;not null"`
	Status    string     `gorm:"column:status;not null;default:pending;index"`
	Attempts  int        `gorm:"column:attempts;not null;default:0"`
	LastError string     `gorm:"column:last_error"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (EmailOutbox) TableName() string {
	return "email_outbox"
}
