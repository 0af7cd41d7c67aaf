package models

import (
	"time"

	"bookmycuts-backend/booking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"

	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingNumber string    `gorm:"uniqueIndex;not null" json:"bookingNumber"`
	ShopID        uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	BarberID      uuid.UUID `gorm:"type:uuid;index;not null" json:"barberId"`
	BarberName    string    `json:"barberName"`

	BookingDate time.Time `gorm:"type:date;index;not null" json:"bookingDate"`
	SlotID      int       `json:"timeSlotId"`
	SlotLabel   string    `json:"timeSlotName"`
	SlotStart   string    `gorm:"type:varchar(5)" json:"timeSlotStart"`
	SlotEnd     string    `gorm:"type:varchar(5)" json:"timeSlotEnd"`

	TotalPrice      booking.Money `gorm:"type:bigint;not null" json:"totalPrice"`
	TotalDuration   int           `json:"totalDuration"`
	PaymentMode     string        `gorm:"type:varchar(10);not null" json:"paymentType"`
	AmountToPay     booking.Money `gorm:"type:bigint;not null" json:"amountToPay"`
	RemainingAmount booking.Money `gorm:"type:bigint;not null" json:"remainingAmount"`
	AmountPaid      booking.Money `gorm:"type:bigint;default:0" json:"amountPaid"`
	Currency        string        `gorm:"type:varchar(3);default:'INR'" json:"currency"`

	BookingStatus    string `gorm:"type:varchar(20);default:'pending'" json:"bookingStatus"`
	PaymentStatus    string `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"`
	PaymentReference string `json:"paymentReference,omitempty"`

	Customer User          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BookingItem `gorm:"foreignKey:BookingID" json:"services"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type BookingItem struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	BookingID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"bookingId"`
	ServiceID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName string        `gorm:"not null" json:"name"`
	UnitPrice   booking.Money `gorm:"type:bigint;not null" json:"price"`
	Duration    int           `json:"duration"`
}

func (i *BookingItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// ServiceNames lists the booked services in booking order.
func (b *Booking) ServiceNames() []string {
	names := make([]string, len(b.Items))
	for i, item := range b.Items {
		names[i] = item.ServiceName
	}
	return names
}
