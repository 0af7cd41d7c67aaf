package services

import (
	"testing"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"

	"github.com/google/uuid"
)

func listBooking(day int, status, payment string, price int64) models.Booking {
	return models.Booking{
		ID:            uuid.New(),
		BookingDate:   time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
		BookingStatus: status,
		PaymentStatus: payment,
		TotalPrice:    booking.Rupees(price),
		TotalDuration: 45,
		SlotStart:     "09:00",
		BarberName:    "John Doe",
		Items: []models.BookingItem{
			{ServiceName: "Haircut"},
			{ServiceName: "Beard Trim"},
		},
	}
}

func TestFormatShopBookings_CompletedFirstThenNewest(t *testing.T) {
	items := FormatShopBookings([]models.Booking{
		listBooking(1, "PENDING", models.PaymentUnpaid, 100),
		listBooking(5, models.BookingConfirmed, models.PaymentPartial, 200),
		listBooking(2, models.BookingCompleted, models.PaymentPaid, 300),
		listBooking(3, models.BookingCompleted, models.PaymentPaid, 400),
	})

	wantDays := []int{3, 2, 5, 1}
	for i, day := range wantDays {
		if items[i].Date.Day() != day {
			t.Fatalf("row %d: day = %d, want %d", i, items[i].Date.Day(), day)
		}
	}
	first := items[0]
	if first.Service != "Haircut, Beard Trim" || first.Duration != "45 mins" || first.Time != "09:00" {
		t.Errorf("unexpected row %+v", first)
	}
	if first.Customer != "Customer" || first.Staff != "John Doe" {
		t.Errorf("customer/staff = %s/%s", first.Customer, first.Staff)
	}
	if items[3].Status != "pending" {
		t.Errorf("status = %s, want lower-cased pending", items[3].Status)
	}
}

func TestSummarizePayments(t *testing.T) {
	items := FormatShopBookings([]models.Booking{
		listBooking(1, models.BookingCompleted, models.PaymentPaid, 300),
		listBooking(2, models.BookingConfirmed, models.PaymentPartial, 200),
		listBooking(3, models.BookingPending, models.PaymentUnpaid, 100),
	})
	s := SummarizePayments(items)
	if s.TotalBookings != 3 || s.PaidBookings != 1 {
		t.Errorf("counts = %d/%d, want 3/1", s.TotalBookings, s.PaidBookings)
	}
	if s.TotalEarnings != booking.Rupees(300) || s.PendingAmount != booking.Rupees(300) {
		t.Errorf("earnings/pending = %v/%v, want 300/300", s.TotalEarnings, s.PendingAmount)
	}
}

func TestFilterByStatus(t *testing.T) {
	items := FormatShopBookings([]models.Booking{
		listBooking(1, models.BookingCompleted, models.PaymentPaid, 300),
		listBooking(2, models.BookingPending, models.PaymentUnpaid, 100),
	})
	if got := FilterByStatus(items, "all"); len(got) != 2 {
		t.Errorf("all: got %d rows, want 2", len(got))
	}
	if got := FilterByStatus(items, "Pending"); len(got) != 1 || got[0].Status != "pending" {
		t.Errorf("pending: got %+v", got)
	}
	if got := FilterByStatus(items, models.BookingCancelled); len(got) != 0 {
		t.Errorf("cancelled: got %d rows, want 0", len(got))
	}
}
