package models

import (
	"time"

	"bookmycuts-backend/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ShopID      uuid.UUID     `gorm:"type:uuid;index;not null" json:"shopId"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Price       booking.Money `gorm:"type:bigint;not null" json:"price"` // paise
	Duration    int           `json:"duration"`                          // in minutes
	Category    string        `gorm:"default:'General'" json:"category"`
	IsActive    bool          `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *Service) CatalogEntry() booking.Service {
	return booking.Service{
		ID:              s.ID.String(),
		Name:            s.Name,
		UnitPrice:       s.Price,
		DurationMinutes: s.Duration,
	}
}
