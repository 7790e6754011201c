package models

import (
	"time"
)

// NotificationLog records the outcome of every outbound reminder so the daily
// scheduler never messages the same session twice.
type NotificationLog struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index;not null"`
	InvoiceItemID uint   `gorm:"index;not null"`
	Channel       string `gorm:"type:varchar(20)"` // whatsapp, sms, email
	Message       string `gorm:"type:text"`
	Status        string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage  string `gorm:"type:text"`
	SentAt        time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
