package models

import (
	"time"

	"bookmycuts-backend/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	Name        string    `gorm:"not null" json:"name"`
	NativePlace string    `json:"nativePlace"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

func (b *Barber) CatalogEntry() booking.Barber {
	return booking.Barber{ID: b.ID.String(), Name: b.Name, OriginLabel: b.NativePlace}
}
