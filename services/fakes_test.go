package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	shop        booking.ShopContext
	services    []booking.Service
	barbers     []booking.Barber
	shopErr     error
	servicesErr error
	barbersErr  error
}

func (f *fakeDirectory) GetShop(ctx context.Context, shopID string) (booking.ShopContext, error) {
	return f.shop, f.shopErr
}

func (f *fakeDirectory) GetServices(ctx context.Context, shopID string) ([]booking.Service, error) {
	return f.services, f.servicesErr
}

func (f *fakeDirectory) GetBarbers(ctx context.Context, shopID string) ([]booking.Barber, error) {
	return f.barbers, f.barbersErr
}

type memCartStore struct {
	carts   map[string]*Cart
	deleted []string
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]*Cart{}}
}

func (m *memCartStore) Create(ctx context.Context, cart *Cart) error {
	m.carts[cart.ID] = cart
	return nil
}

func (m *memCartStore) Get(ctx context.Context, id string) (*Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

func (m *memCartStore) Save(ctx context.Context, cart *Cart) error {
	m.carts[cart.ID] = cart
	return nil
}

func (m *memCartStore) Delete(ctx context.Context, id string) error {
	delete(m.carts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type memBookingStore struct {
	bookings map[uuid.UUID]*models.Booking
	saves    int
	failWith error
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: map[uuid.UUID]*models.Booking{}}
}

func (m *memBookingStore) Create(ctx context.Context, b *models.Booking) error {
	if m.failWith != nil {
		return m.failWith
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingStore) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (m *memBookingStore) Save(ctx context.Context, b *models.Booking) error {
	m.saves++
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingStore) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingStore) ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ShopID == shopID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingStore) ListForDate(ctx context.Context, day time.Time, statuses ...string) ([]models.Booking, error) {
	return nil, errors.New("not used")
}

type fakeGateway struct {
	charges   []ChargeRequest
	status    string
	chargeErr error
}

func (f *fakeGateway) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	if f.chargeErr != nil {
		return Charge{}, f.chargeErr
	}
	f.charges = append(f.charges, req)
	return Charge{Reference: fmt.Sprintf("pi_%d", len(f.charges)), ClientSecret: "secret", Status: ChargeRequiresPayment}, nil
}

func (f *fakeGateway) Lookup(ctx context.Context, reference string) (Charge, error) {
	return Charge{Reference: reference, Status: f.status}, nil
}

type fakeNotifier struct {
	sent []uuid.UUID
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error {
	f.sent = append(f.sent, bookingID)
	return nil
}
