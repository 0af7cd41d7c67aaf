package models

import (
	"time"

	"bookmycuts-backend/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shop struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`

	Name    string  `gorm:"not null" json:"name"`
	City    string  `gorm:"index" json:"city"`
	Mobile  string  `gorm:"not null" json:"mobile"`
	Website string  `json:"website"`
	Address string  `json:"address"`
	Rating  float64 `gorm:"type:decimal(2,1);default:0" json:"rating"`

	// Timing is the owner's free text ("9am - 8pm"); the clocks are derived from it.
	Timing      string `gorm:"not null" json:"timing"`
	OpeningTime string `gorm:"type:varchar(5)" json:"openingTime"`
	ClosingTime string `gorm:"type:varchar(5)" json:"closingTime"`

	WhatsAppNotifications bool `gorm:"default:false" json:"whatsAppNotifications"`
	SMSNotifications      bool `gorm:"default:true" json:"smsNotifications"`

	Barbers  []Barber  `gorm:"foreignKey:ShopID" json:"barbers,omitempty"`
	Services []Service `gorm:"foreignKey:ShopID" json:"services,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// BeforeSave keeps the opening and closing clocks in step with Timing.
func (s *Shop) BeforeSave(tx *gorm.DB) (err error) {
	s.OpeningTime, s.ClosingTime = booking.ParseTiming(s.Timing)
	return
}

// Context is the view of the shop the booking calculator works with.
func (s *Shop) Context() booking.ShopContext {
	return booking.ShopContext{
		ID:           s.ID.String(),
		Name:         s.Name,
		OpeningClock: s.OpeningTime,
		ClosingClock: s.ClosingTime,
	}
}
