// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/config"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   booking.Money     `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue booking.Money     `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    booking.Money     `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopServices           []ServiceSummary  `json:"topServices"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	TopBarbers            []BarberSummary   `json:"topBarbers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string        `json:"name"`
	Count   int           `json:"count"`
	Revenue booking.Money `json:"revenue"`
}

type CustomerSummary struct {
	Name   string        `json:"name"`
	Visits int           `json:"visits"`
	Spent  booking.Money `json:"spent"`
}

type BarberSummary struct {
	Name     string `json:"name"`
	Bookings int    `json:"bookings"`
	Minutes  int    `json:"minutes"`
}

type QuickStatistics struct {
	TotalCustomers   int           `json:"totalCustomers"`
	TotalBookings    int           `json:"totalBookings"`
	AvgMonthlyVisits float64       `json:"avgMonthlyVisits"`
	AvgOrderValue    booking.Money `json:"avgOrderValue"`
}

type revenueRange struct {
	start, end time.Time
}

// GetReportAnalytics returns revenue trends and rankings for the owner's shop.
// Revenue counts the full price of completed bookings.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	shop, ok := ownerShop(c)
	if !ok {
		return
	}

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
	quarterStart := rc.getQuarterStart(now)
	quarterEnd := rc.getQuarterEnd(now)
	yearStart := time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation)
	yearEnd := time.Date(currentYear, 12, 31, 0, 0, 0, 0, currentLocation)

	ranges := map[string]revenueRange{
		"month":       {firstOfMonth, lastOfMonth},
		"lastMonth":   {firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1)},
		"quarter":     {quarterStart, quarterEnd},
		"lastQuarter": {quarterStart.AddDate(0, -3, 0), quarterStart.AddDate(0, 0, -1)},
		"year":        {yearStart, yearEnd},
		"lastYear":    {yearStart.AddDate(-1, 0, 0), yearEnd.AddDate(-1, 0, 0)},
	}
	revenue := make(map[string]booking.Money, len(ranges))
	for name, r := range ranges {
		total, err := rc.getRevenue(shop.ID, r.start, r.end)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get revenue")
			return
		}
		revenue[name] = total
	}

	topServices, err := rc.getTopServices(shop.ID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	topCustomers, err := rc.getTopCustomers(shop.ID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	topBarbers, err := rc.getTopBarbers(shop.ID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top barbers")
		return
	}

	quickStats, err := rc.getQuickStatistics(shop.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   revenue["month"],
		MonthGrowth:           rc.calculateGrowthPercentage(revenue["month"], revenue["lastMonth"]),
		CurrentQuarterRevenue: revenue["quarter"],
		QuarterGrowth:         rc.calculateGrowthPercentage(revenue["quarter"], revenue["lastQuarter"]),
		CurrentYearRevenue:    revenue["year"],
		YearGrowth:            rc.calculateGrowthPercentage(revenue["year"], revenue["lastYear"]),
		TopServices:           topServices,
		TopCustomers:          topCustomers,
		TopBarbers:            topBarbers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(shopID uuid.UUID, start, end time.Time) (booking.Money, error) {
	var total int64
	err := config.DB.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_status = ? AND booking_date BETWEEN ? AND ?",
			shopID, models.BookingCompleted, start, end).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return booking.Money(total), err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous booking.Money) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}

func (rc *ReportController) getTopServices(shopID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("booking_items").
		Select("booking_items.service_name AS name, COUNT(*) AS count, SUM(booking_items.unit_price) AS revenue").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("bookings.shop_id = ? AND bookings.booking_status = ? AND bookings.booking_date BETWEEN ? AND ? AND bookings.deleted_at IS NULL",
			shopID, models.BookingCompleted, start, end).
		Group("booking_items.service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopCustomers(shopID uuid.UUID, start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("bookings").
		Select("users.name, COUNT(bookings.id) AS visits, SUM(bookings.total_price) AS spent").
		Joins("JOIN users ON users.id = bookings.customer_id").
		Where("bookings.shop_id = ? AND bookings.booking_status = ? AND bookings.booking_date BETWEEN ? AND ? AND bookings.deleted_at IS NULL",
			shopID, models.BookingCompleted, start, end).
		Group("users.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getTopBarbers(shopID uuid.UUID, start, end time.Time, limit int) ([]BarberSummary, error) {
	var barbers []BarberSummary

	err := config.DB.Table("bookings").
		Select("barber_name AS name, COUNT(*) AS bookings, SUM(total_duration) AS minutes").
		Where("shop_id = ? AND booking_status = ? AND booking_date BETWEEN ? AND ? AND deleted_at IS NULL",
			shopID, models.BookingCompleted, start, end).
		Group("barber_name").
		Order("bookings DESC").
		Limit(limit).
		Scan(&barbers).Error

	return barbers, err
}

func (rc *ReportController) getQuickStatistics(shopID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Booking{}).
		Where("shop_id = ?", shopID).
		Distinct("customer_id").
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_status = ?", shopID, models.BookingCompleted).
		Count(&totalBookings).Error; err != nil {
		return stats, err
	}
	stats.TotalBookings = int(totalBookings)

	// Average Monthly Visits
	var avgVisits float64
	err := config.DB.Raw(`
		SELECT COALESCE(AVG(visits), 0) FROM (
			SELECT COUNT(*) as visits
			FROM bookings
			WHERE shop_id = ? AND booking_status = ? AND deleted_at IS NULL
			GROUP BY DATE_TRUNC('month', booking_date)
		) monthly_visits
	`, shopID, models.BookingCompleted).Scan(&avgVisits).Error
	if err != nil {
		return stats, err
	}
	stats.AvgMonthlyVisits = avgVisits

	// Average Order Value
	var totalRevenue int64
	if err := config.DB.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_status = ?", shopID, models.BookingCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if stats.TotalBookings > 0 {
		stats.AvgOrderValue = booking.Money(totalRevenue / int64(stats.TotalBookings))
	}

	return stats, nil
}
