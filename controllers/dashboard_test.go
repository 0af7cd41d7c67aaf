package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestBuildDashboard_DatabaseDownIsAnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	if _, err := buildDashboard(db, uuid.New(), time.Now()); err == nil {
		t.Fatal("expected error when income query fails, got nil")
	}
}

func TestBuildDashboard_LateQueryFailureIsAnError(t *testing.T) {
	db, mock := newMockDB(t)
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	}
	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	if _, err := buildDashboard(db, uuid.New(), time.Now()); err == nil {
		t.Fatal("expected error when upcoming bookings query fails, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildDashboard_Figures(t *testing.T) {
	db, mock := newMockDB(t)
	for _, paise := range []int64{2000, 6000, 30000} {
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(paise))
	}
	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT count").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := buildDashboard(db, uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DailyIncome != 2000 || got.WeeklyIncome != 6000 || got.MonthlyIncome != 30000 {
		t.Errorf("income = %v/%v/%v, want 2000/6000/30000 paise", got.DailyIncome, got.WeeklyIncome, got.MonthlyIncome)
	}
	if got.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", got.CompletionRate)
	}
	if got.NewCustomers != 1 {
		t.Errorf("NewCustomers = %v, want 1", got.NewCustomers)
	}
	if got.UpcomingBookings == nil || len(got.UpcomingBookings) != 0 {
		t.Errorf("UpcomingBookings = %v, want empty", got.UpcomingBookings)
	}
}
