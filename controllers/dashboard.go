package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	DailyIncome           booking.Money     `json:"dailyIncome"`
	WeeklyIncome          booking.Money     `json:"weeklyIncome"`
	MonthlyIncome         booking.Money     `json:"monthlyIncome"`
	TotalAppointments     int64             `json:"totalAppointments"`
	CompletedAppointments int64             `json:"completedAppointments"`
	CompletionRate        float64           `json:"completionRate"`
	NewCustomers          int64             `json:"newCustomers"`
	UpcomingBookings      []UpcomingBooking `json:"upcomingBookings"`
}

type UpcomingBooking struct {
	Customer string `json:"customer"`
	Service  string `json:"service"`
	Staff    string `json:"staff"`
	Time     string `json:"time"` // e.g. "Tomorrow, 09:00"
}

// GetDashboardOverview returns this month's figures for the owner's shop.
func GetDashboardOverview(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	overview, err := buildDashboard(config.DB, shop.ID, time.Now())
	if err != nil {
		utils.GetLogger().Error("Failed to load dashboard",
			zap.String("shopId", shop.ID.String()),
			zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func buildDashboard(db *gorm.DB, shopID uuid.UUID, now time.Time) (DashboardOverview, error) {
	var overview DashboardOverview
	today := utils.BeginningOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -6)

	var err error
	if overview.DailyIncome, err = collectedBetween(db, shopID, today, today); err != nil {
		return overview, fmt.Errorf("daily income: %w", err)
	}
	if overview.WeeklyIncome, err = collectedBetween(db, shopID, weekStart, today); err != nil {
		return overview, fmt.Errorf("weekly income: %w", err)
	}
	if overview.MonthlyIncome, err = collectedBetween(db, shopID, firstOfMonth, today); err != nil {
		return overview, fmt.Errorf("monthly income: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_date >= ? AND booking_status <> ?", shopID, firstOfMonth, models.BookingCancelled).
		Count(&overview.TotalAppointments).Error; err != nil {
		return overview, fmt.Errorf("count appointments: %w", err)
	}

	if err := db.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_date >= ? AND booking_status = ?", shopID, firstOfMonth, models.BookingCompleted).
		Count(&overview.CompletedAppointments).Error; err != nil {
		return overview, fmt.Errorf("count completed: %w", err)
	}
	if overview.TotalAppointments > 0 {
		overview.CompletionRate = float64(overview.CompletedAppointments) / float64(overview.TotalAppointments) * 100
	}

	// Customers whose first booking at this shop falls in this month
	if err := db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT customer_id, MIN(created_at) AS first_booking
			FROM bookings
			WHERE shop_id = ? AND deleted_at IS NULL
			GROUP BY customer_id
		) firsts
		WHERE first_booking >= ?
	`, shopID, firstOfMonth).Scan(&overview.NewCustomers).Error; err != nil {
		return overview, fmt.Errorf("count new customers: %w", err)
	}

	var upcoming []models.Booking
	if err := db.Preload("Items").Preload("Customer").
		Where("shop_id = ? AND booking_date >= ? AND booking_status IN ?", shopID, today,
			[]string{models.BookingPending, models.BookingConfirmed}).
		Order("booking_date, slot_start").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return overview, fmt.Errorf("upcoming bookings: %w", err)
	}

	overview.UpcomingBookings = make([]UpcomingBooking, 0, len(upcoming))
	for i := range upcoming {
		b := &upcoming[i]
		overview.UpcomingBookings = append(overview.UpcomingBookings, UpcomingBooking{
			Customer: b.Customer.Name,
			Service:  strings.Join(b.ServiceNames(), ", "),
			Staff:    b.BarberName,
			Time:     utils.RelativeDay(b.BookingDate, now) + ", " + b.SlotStart,
		})
	}
	return overview, nil
}

// collectedBetween sums what customers paid online for bookings dated in [from, to].
func collectedBetween(db *gorm.DB, shopID uuid.UUID, from, to time.Time) (booking.Money, error) {
	var total int64
	err := db.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_date BETWEEN ? AND ? AND booking_status <> ?",
			shopID, from, to, models.BookingCancelled).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total).Error
	return booking.Money(total), err
}
