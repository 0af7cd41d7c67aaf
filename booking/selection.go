// booking/selection.go
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// PaymentMode decides how much of the total is charged up front.
type PaymentMode string

const (
	PaymentAdvance PaymentMode = "advance"
	PaymentFull    PaymentMode = "full"
)

var (
	ErrUnknownPaymentMode = errors.New("payment mode must be advance or full")
	ErrDateInPast         = errors.New("booking date cannot be in the past")
)

// ParsePaymentMode accepts "advance" or "full" in any case.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentAdvance:
		return PaymentAdvance, nil
	case PaymentFull:
		return PaymentFull, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMode, s)
}

// Service is a catalog entry a customer can add to the cart.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	UnitPrice       Money  `json:"price"`
	DurationMinutes int    `json:"duration"`
}

// Barber is a member of a shop's staff.
type Barber struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OriginLabel string `json:"nativePlace"`
}

// Selection is the in-progress booking a customer is assembling.
// The zero value is an empty selection paying in advance.
type Selection struct {
	Barber      *Barber         `json:"barber,omitempty"`
	Services    []Service       `json:"services"`
	Date        *time.Time      `json:"date,omitempty"`
	Slot        *TimeSlotWindow `json:"slot,omitempty"`
	PaymentMode PaymentMode     `json:"paymentMode"`
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{Services: []Service{}, PaymentMode: PaymentAdvance}
}

func (s *Selection) PickBarber(b Barber) {
	s.Barber = &b
}

// HasService reports whether a service with the given id is selected.
func (s *Selection) HasService(id string) bool {
	for _, svc := range s.Services {
		if svc.ID == id {
			return true
		}
	}
	return false
}

// ToggleService removes the service if it is selected and appends it otherwise.
// The order of the remaining services is kept.
func (s *Selection) ToggleService(service Service) {
	if s.HasService(service.ID) {
		kept := make([]Service, 0, len(s.Services))
		for _, svc := range s.Services {
			if svc.ID != service.ID {
				kept = append(kept, svc)
			}
		}
		s.Services = kept
		return
	}
	s.Services = append(s.Services, service)
}

// PickDate sets the booking day. The date's calendar day is read in now's
// location, and days before now's calendar day are rejected.
func (s *Selection) PickDate(date, now time.Time) error {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if day.Before(truncateDay(now)) {
		return ErrDateInPast
	}
	s.Date = &day
	return nil
}

func (s *Selection) PickSlot(slot TimeSlotWindow) {
	s.Slot = &slot
}

func (s *Selection) SetPaymentMode(mode PaymentMode) {
	s.PaymentMode = mode
}

// Reset empties the selection after submission.
func (s *Selection) Reset() {
	*s = *NewSelection()
}

// Totals are the summed price and duration of the selected services.
type Totals struct {
	TotalPrice    Money `json:"totalPrice"`
	TotalDuration int   `json:"totalDuration"`
}

// ComputeTotals sums price and duration over the selected services.
func ComputeTotals(s *Selection) Totals {
	var t Totals
	if s == nil {
		return t
	}
	for _, svc := range s.Services {
		t.TotalPrice += svc.UnitPrice
		t.TotalDuration += svc.DurationMinutes
	}
	return t
}

// Progress counts finished steps out of barber, services and date+slot.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func ComputeProgress(s *Selection) Progress {
	p := Progress{Total: 3}
	if s.Barber != nil {
		p.Completed++
	}
	if len(s.Services) > 0 {
		p.Completed++
	}
	if s.Date != nil && s.Slot != nil {
		p.Completed++
	}
	return p
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
