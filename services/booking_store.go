package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmycuts-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Save(ctx context.Context, b *models.Booking) error
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error)
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Booking, error)
	ListForDate(ctx context.Context, day time.Time, statuses ...string) ([]models.Booking, error)
}

type GormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

// Create saves the booking and its items in one transaction.
func (s *GormBookingStore) Create(ctx context.Context, b *models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := b.Items
		b.Items = nil
		if err := tx.Omit("Customer").Create(b).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		for i := range items {
			items[i].BookingID = b.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("create booking items: %w", err)
			}
		}
		b.Items = items
		return nil
	})
}

func (s *GormBookingStore) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %s: %w", id, err)
	}
	return &b, nil
}

// Save updates the booking row only; items never change after checkout.
func (s *GormBookingStore) Save(ctx context.Context, b *models.Booking) error {
	if err := s.db.WithContext(ctx).Omit("Items", "Customer").Save(b).Error; err != nil {
		return fmt.Errorf("save booking %s: %w", b.ID, err)
	}
	return nil
}

func (s *GormBookingStore) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("booking_date DESC, created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormBookingStore) ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("shop_id = ?", shopID).
		Order("booking_date DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormBookingStore) ListForDate(ctx context.Context, day time.Time, statuses ...string) ([]models.Booking, error) {
	var bookings []models.Booking
	q := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("booking_date = ?", day.Format("2006-01-02"))
	if len(statuses) > 0 {
		q = q.Where("booking_status IN ?", statuses)
	}
	err := q.Find(&bookings).Error
	return bookings, err
}
