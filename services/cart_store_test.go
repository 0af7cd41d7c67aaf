package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookmycuts-backend/booking"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCartStore(t *testing.T) (*RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCartStore(client, 30*time.Minute), mr
}

func TestRedisCartStore_CreateAndGet(t *testing.T) {
	store, mr := newTestCartStore(t)
	ctx := context.Background()

	cart := NewCart("cust-1", "shop-1")
	cart.Selection.ToggleService(booking.Service{ID: "svc-1", Name: "Haircut", UnitPrice: booking.Rupees(200), DurationMinutes: 30})
	if err := store.Create(ctx, cart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl := mr.TTL(cartKey(cart.ID)); ttl != 30*time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, 30*time.Minute)
	}

	got, err := store.Get(ctx, cart.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CustomerID != "cust-1" || len(got.Selection.Services) != 1 {
		t.Fatalf("expected stored cart back, got %+v", got)
	}
	if got.Selection.Services[0].UnitPrice != booking.Rupees(200) {
		t.Errorf("UnitPrice = %v, want %v", got.Selection.Services[0].UnitPrice, booking.Rupees(200))
	}
}

func TestRedisCartStore_CreateRefusesExistingKey(t *testing.T) {
	store, _ := newTestCartStore(t)
	ctx := context.Background()

	cart := NewCart("cust-1", "shop-1")
	if err := store.Create(ctx, cart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(ctx, cart); !errors.Is(err, ErrCartExists) {
		t.Fatalf("expected ErrCartExists, got %v", err)
	}
}

func TestRedisCartStore_MissingAndExpired(t *testing.T) {
	store, mr := newTestCartStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	cart := NewCart("cust-1", "shop-1")
	if err := store.Create(ctx, cart); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(31 * time.Minute)
	if _, err := store.Get(ctx, cart.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected expired cart to be not found, got %v", err)
	}
}

func TestRedisCartStore_SaveRestartsExpiry(t *testing.T) {
	store, mr := newTestCartStore(t)
	ctx := context.Background()

	cart := NewCart("cust-1", "shop-1")
	if err := store.Create(ctx, cart); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(20 * time.Minute)
	if ttl := mr.TTL(cartKey(cart.ID)); ttl != 10*time.Minute {
		t.Fatalf("expected 10m left before save, got %v", ttl)
	}

	cart.Selection.SetPaymentMode(booking.PaymentFull)
	if err := store.Save(ctx, cart); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(cartKey(cart.ID)); ttl != 30*time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, 30*time.Minute)
	}

	mr.FastForward(20 * time.Minute)
	got, err := store.Get(ctx, cart.ID)
	if err != nil {
		t.Fatalf("expected cart to survive past its first expiry, got %v", err)
	}
	if got.Selection.PaymentMode != booking.PaymentFull {
		t.Errorf("PaymentMode = %v, want %v", got.Selection.PaymentMode, booking.PaymentFull)
	}
}

func TestRedisCartStore_Delete(t *testing.T) {
	store, mr := newTestCartStore(t)
	ctx := context.Background()

	cart := NewCart("cust-1", "shop-1")
	if err := store.Create(ctx, cart); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, cart.ID); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(cartKey(cart.ID)) {
		t.Fatal("expected cart key to be removed")
	}
}

func TestRedisCartStore_ServerErrorIsNotNotFound(t *testing.T) {
	store, mr := newTestCartStore(t)
	mr.SetError("ERR server unavailable")

	_, err := store.Get(context.Background(), "any")
	if err == nil || errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected a read error distinct from ErrCartNotFound, got %v", err)
	}
}

func TestLoadOwnedCart(t *testing.T) {
	store, _ := newTestCartStore(t)
	ctx := context.Background()

	cart := NewCart("cust-1", "shop-1")
	if err := store.Create(ctx, cart); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOwnedCart(ctx, store, cart.ID, "cust-1"); err != nil {
		t.Fatalf("expected owner to load cart, got %v", err)
	}
	if _, err := LoadOwnedCart(ctx, store, cart.ID, "cust-2"); !errors.Is(err, ErrNotCartOwner) {
		t.Fatalf("expected ErrNotCartOwner, got %v", err)
	}
	if _, err := LoadOwnedCart(ctx, store, "missing", "cust-1"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}
