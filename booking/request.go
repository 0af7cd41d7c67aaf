// booking/request.go
package booking

import (
	"errors"
	"time"
)

const (
	StatusPending = "pending"
	PaymentUnpaid = "unpaid"
)

// DefaultAdvanceAmount is the flat booking-confirmation charge.
var DefaultAdvanceAmount = Rupees(20)

var ErrShopMissing = errors.New("shop id is required")

// ShopContext is what the calculator needs to know about the shop being booked.
type ShopContext struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OpeningClock string `json:"openingTime"`
	ClosingClock string `json:"closingTime"`
}

// Slots derives the shop's time slot windows from its hours.
func (s ShopContext) Slots() []TimeSlotWindow {
	return DeriveTimeSlots(s.OpeningClock, s.ClosingClock)
}

// BookingRequest is the payload handed to the booking service.
type BookingRequest struct {
	ShopID        string      `json:"shopId"`
	ShopName      string      `json:"shopName"`
	BarberID      string      `json:"barberId"`
	BarberName    string      `json:"barberName"`
	BarberOrigin  string      `json:"barberNativePlace"`
	ServiceIDs    []string    `json:"serviceIds"`
	Services      []Service   `json:"services"`
	BookingDate   string      `json:"bookingDate"`
	SlotID        int         `json:"timeSlotId"`
	SlotLabel     string      `json:"timeSlotName"`
	SlotStart     string      `json:"timeSlotStart"`
	SlotEnd       string      `json:"timeSlotEnd"`
	TotalPrice    Money       `json:"totalPrice"`
	TotalDuration int         `json:"totalDuration"`
	PaymentMode   PaymentMode `json:"paymentType"`
	AmountToPay   Money       `json:"amountToPay"`
	Remaining     Money       `json:"remainingAmount"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Currency      string      `json:"currency"`
	RequestedAt   time.Time   `json:"bookingTimestamp"`
}

// PaymentSplit is how a total divides between now and at the shop.
type PaymentSplit struct {
	AmountToPay Money `json:"amountToPay"`
	Remaining   Money `json:"remainingAmount"`
}

// Calculator holds the pricing policy for building booking requests.
type Calculator struct {
	AdvanceAmount Money
	Now           func() time.Time
}

// NewCalculator builds a calculator charging the given advance. A zero or
// negative advance falls back to DefaultAdvanceAmount.
func NewCalculator(advance Money) *Calculator {
	if advance <= 0 {
		advance = DefaultAdvanceAmount
	}
	return &Calculator{AdvanceAmount: advance, Now: time.Now}
}

// Split returns the amount charged now and the amount left for the shop.
// The advance never exceeds the total.
func (c *Calculator) Split(total Money, mode PaymentMode) PaymentSplit {
	pay := total
	if mode == PaymentAdvance {
		pay = minMoney(c.AdvanceAmount, total)
	}
	if pay < 0 {
		pay = 0
	}
	return PaymentSplit{AmountToPay: pay, Remaining: total - pay}
}

// PaymentPreview is the split for the selection's current payment mode.
func (c *Calculator) PaymentPreview(s *Selection) PaymentSplit {
	return c.Split(ComputeTotals(s).TotalPrice, s.PaymentMode)
}

// BuildBookingRequest turns a complete selection into a pending, unpaid
// booking request. It does not submit anything.
func (c *Calculator) BuildBookingRequest(s *Selection, shop ShopContext, mode PaymentMode) (BookingRequest, error) {
	if err := Validate(s); err != nil {
		return BookingRequest{}, err
	}
	if shop.ID == "" {
		return BookingRequest{}, ErrShopMissing
	}
	if mode != PaymentAdvance && mode != PaymentFull {
		return BookingRequest{}, ErrUnknownPaymentMode
	}

	totals := ComputeTotals(s)
	split := c.Split(totals.TotalPrice, mode)

	ids := make([]string, len(s.Services))
	services := make([]Service, len(s.Services))
	for i, svc := range s.Services {
		ids[i] = svc.ID
		services[i] = svc
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	return BookingRequest{
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		BarberID:      s.Barber.ID,
		BarberName:    s.Barber.Name,
		BarberOrigin:  s.Barber.OriginLabel,
		ServiceIDs:    ids,
		Services:      services,
		BookingDate:   s.Date.Format(DateLayout),
		SlotID:        s.Slot.ID,
		SlotLabel:     s.Slot.Label,
		SlotStart:     s.Slot.Start,
		SlotEnd:       s.Slot.End,
		TotalPrice:    totals.TotalPrice,
		TotalDuration: totals.TotalDuration,
		PaymentMode:   mode,
		AmountToPay:   split.AmountToPay,
		Remaining:     split.Remaining,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
		Currency:      CurrencyINR,
		RequestedAt:   now().UTC(),
	}, nil
}
