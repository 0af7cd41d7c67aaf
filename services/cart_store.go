package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookmycuts-backend/booking"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrCartNotFound = errors.New("cart not found or expired")
	ErrCartExists   = errors.New("cart already exists")
	ErrNotCartOwner = errors.New("cart belongs to another customer")
)

// Cart is one customer's in-progress booking at one shop.
type Cart struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customerId"`
	ShopID     string             `json:"shopId"`
	Selection  *booking.Selection `json:"selection"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewCart returns an empty cart for the customer at the shop.
func NewCart(customerID, shopID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ShopID:     shopID,
		Selection:  booking.NewSelection(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type CartStore interface {
	Create(ctx context.Context, cart *Cart) error
	Get(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
}

// LoadOwnedCart fetches a cart and checks it belongs to the customer.
func LoadOwnedCart(ctx context.Context, store CartStore, id, customerID string) (*Cart, error) {
	cart, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart.CustomerID != customerID {
		return nil, ErrNotCartOwner
	}
	return cart, nil
}

// RedisCartStore keeps carts as JSON with a sliding expiry.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(id string) string {
	return "cart:" + id
}

func (s *RedisCartStore) Get(ctx context.Context, id string) (*Cart, error) {
	data, err := s.client.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cart %s: %w", id, err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", id, err)
	}
	if cart.Selection == nil {
		cart.Selection = booking.NewSelection()
	}
	return &cart, nil
}

// Create stores a new cart, refusing to overwrite an existing key.
func (s *RedisCartStore) Create(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.ID, err)
	}
	ok, err := s.client.SetNX(ctx, cartKey(cart.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("write cart %s: %w", cart.ID, err)
	}
	if !ok {
		return fmt.Errorf("create cart %s: %w", cart.ID, ErrCartExists)
	}
	return nil
}

// Save writes the cart and restarts its expiry.
func (s *RedisCartStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cart.ID, err)
	}
	if err := s.client.Set(ctx, cartKey(cart.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write cart %s: %w", cart.ID, err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", id, err)
	}
	return nil
}
