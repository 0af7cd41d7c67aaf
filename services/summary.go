package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"
)

// ShopBookingItem is one row of a shop owner's booking list.
type ShopBookingItem struct {
	ID            string        `json:"id"`
	BookingNumber string        `json:"bookingNumber"`
	Customer      string        `json:"customer"`
	Service       string        `json:"service"`
	Date          time.Time     `json:"date"`
	FormattedDate string        `json:"formattedDate"`
	Time          string        `json:"time"`
	Duration      string        `json:"duration"`
	Price         booking.Money `json:"price"`
	Status        string        `json:"status"`
	Staff         string        `json:"staff"`
	PaymentStatus string        `json:"paymentStatus"`
}

type PaymentSummary struct {
	TotalEarnings booking.Money `json:"totalEarnings"`
	TotalBookings int           `json:"totalBookings"`
	PaidBookings  int           `json:"paidBookings"`
	PendingAmount booking.Money `json:"pendingAmount"`
}

// FormatShopBookings flattens bookings into list rows, completed ones first
// and then newest date first.
func FormatShopBookings(bookings []models.Booking) []ShopBookingItem {
	items := make([]ShopBookingItem, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		customer := b.Customer.Name
		if customer == "" {
			customer = "Customer"
		}
		items = append(items, ShopBookingItem{
			ID:            b.ID.String(),
			BookingNumber: b.BookingNumber,
			Customer:      customer,
			Service:       strings.Join(b.ServiceNames(), ", "),
			Date:          b.BookingDate,
			FormattedDate: b.BookingDate.Format(booking.DateLayout),
			Time:          b.SlotStart,
			Duration:      fmt.Sprintf("%d mins", b.TotalDuration),
			Price:         b.TotalPrice,
			Status:        strings.ToLower(b.BookingStatus),
			Staff:         b.BarberName,
			PaymentStatus: b.PaymentStatus,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci := items[i].Status == models.BookingCompleted
		cj := items[j].Status == models.BookingCompleted
		if ci != cj {
			return ci
		}
		return items[i].Date.After(items[j].Date)
	})
	return items
}

// SummarizePayments totals fully paid bookings as earnings and everything
// else as pending.
func SummarizePayments(items []ShopBookingItem) PaymentSummary {
	var s PaymentSummary
	for _, item := range items {
		s.TotalBookings++
		if item.PaymentStatus == models.PaymentPaid {
			s.TotalEarnings += item.Price
			s.PaidBookings++
		} else {
			s.PendingAmount += item.Price
		}
	}
	return s
}

// FilterByStatus keeps rows with the given status; "all" or "" keeps everything.
func FilterByStatus(items []ShopBookingItem, status string) []ShopBookingItem {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" || status == "all" {
		return items
	}
	filtered := make([]ShopBookingItem, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
