package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidTransition = errors.New("booking status change not allowed")

// CheckoutResult is the persisted booking and the request it was built from.
type CheckoutResult struct {
	Booking *models.Booking        `json:"booking"`
	Request booking.BookingRequest `json:"request"`
}

type CheckoutService struct {
	Calculator *booking.Calculator
	Carts      CartStore
	Bookings   BookingStore
	Logger     *zap.Logger
}

func NewCheckoutService(calc *booking.Calculator, carts CartStore, bookings BookingStore) *CheckoutService {
	return &CheckoutService{Calculator: calc, Carts: carts, Bookings: bookings, Logger: zap.L()}
}

// Checkout validates the cart, records a pending booking and discards the cart.
// An incomplete cart returns its *booking.ValidationError and persists nothing.
func (s *CheckoutService) Checkout(ctx context.Context, cart *Cart, shop booking.ShopContext) (*CheckoutResult, error) {
	req, err := s.Calculator.BuildBookingRequest(cart.Selection, shop, cart.Selection.PaymentMode)
	if err != nil {
		return nil, err
	}

	b, err := bookingFromRequest(req, cart.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	if err := s.Carts.Delete(ctx, cart.ID); err != nil {
		s.Logger.Warn("failed to discard cart after checkout",
			zap.String("cartId", cart.ID),
			zap.Error(err))
	}
	cart.Selection.Reset()

	s.Logger.Info("booking created",
		zap.String("bookingId", b.ID.String()),
		zap.String("shopId", req.ShopID),
		zap.Int64("totalPaise", req.TotalPrice.MinorUnits()),
		zap.String("paymentMode", string(req.PaymentMode)))

	return &CheckoutResult{Booking: b, Request: req}, nil
}

func bookingFromRequest(req booking.BookingRequest, customerID string) (*models.Booking, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("shop id %q: %w", req.ShopID, err)
	}
	customer, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("customer id %q: %w", customerID, err)
	}
	barberID, err := uuid.Parse(req.BarberID)
	if err != nil {
		return nil, fmt.Errorf("barber id %q: %w", req.BarberID, err)
	}
	day, err := time.Parse(booking.DateLayout, req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("booking date %q: %w", req.BookingDate, err)
	}

	items := make([]models.BookingItem, 0, len(req.Services))
	for _, svc := range req.Services {
		serviceID, err := uuid.Parse(svc.ID)
		if err != nil {
			return nil, fmt.Errorf("service id %q: %w", svc.ID, err)
		}
		items = append(items, models.BookingItem{
			ServiceID:   serviceID,
			ServiceName: svc.Name,
			UnitPrice:   svc.UnitPrice,
			Duration:    svc.DurationMinutes,
		})
	}

	return &models.Booking{
		ID:              uuid.New(),
		BookingNumber:   "BK-" + day.Format("20060102") + "-" + utils.GenerateRandomString(6),
		ShopID:          shopID,
		CustomerID:      customer,
		BarberID:        barberID,
		BarberName:      req.BarberName,
		BookingDate:     day,
		SlotID:          req.SlotID,
		SlotLabel:       req.SlotLabel,
		SlotStart:       req.SlotStart,
		SlotEnd:         req.SlotEnd,
		TotalPrice:      req.TotalPrice,
		TotalDuration:   req.TotalDuration,
		PaymentMode:     string(req.PaymentMode),
		AmountToPay:     req.AmountToPay,
		RemainingAmount: req.Remaining,
		Currency:        req.Currency,
		BookingStatus:   req.Status,
		PaymentStatus:   req.PaymentStatus,
		Items:           items,
	}, nil
}

var ownerTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

// CanTransition reports whether a shop owner may move a booking from one
// status to another.
func CanTransition(from, to string) bool {
	for _, next := range ownerTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies an owner's status change to a booking of their shop.
func (s *CheckoutService) UpdateStatus(ctx context.Context, shopID, bookingID uuid.UUID, status string) (*models.Booking, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ShopID != shopID {
		return nil, ErrBookingNotFound
	}
	if !CanTransition(b.BookingStatus, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.BookingStatus, status)
	}
	b.BookingStatus = status
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel lets a customer cancel their own pending or confirmed booking.
func (s *CheckoutService) Cancel(ctx context.Context, customerID, bookingID uuid.UUID) (*models.Booking, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrBookingNotFound
	}
	if !CanTransition(b.BookingStatus, models.BookingCancelled) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.BookingStatus, models.BookingCancelled)
	}
	b.BookingStatus = models.BookingCancelled
	if err := s.Bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
