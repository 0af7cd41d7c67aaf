package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationConfirmation = "confirmation"
	NotificationReminder     = "reminder"
)

// NotificationTemplate is a shop's own wording for a booking message.
// Placeholders: [CustomerName] [ShopName] [Date] [Slot].
type NotificationTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID   uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	Type     string    `gorm:"type:varchar(20);not null" json:"type"`
	Message  string    `gorm:"type:text;not null" json:"message"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *NotificationTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

type NotificationLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	ShopID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	BookingID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	TemplateID   *uuid.UUID `gorm:"type:uuid"`
	Type         string     `gorm:"type:varchar(20)"` // confirmation, reminder
	Message      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string     `gorm:"type:text"`
	Channel      string     `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time
	CreatedAt    time.Time
}

func (l *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
