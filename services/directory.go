package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrShopNotFound = errors.New("shop not found")

// ShopDirectory looks up what a customer can book at a shop.
type ShopDirectory interface {
	GetShop(ctx context.Context, shopID string) (booking.ShopContext, error)
	GetServices(ctx context.Context, shopID string) ([]booking.Service, error)
	GetBarbers(ctx context.Context, shopID string) ([]booking.Barber, error)
}

type GormShopDirectory struct {
	db *gorm.DB
}

func NewGormShopDirectory(db *gorm.DB) *GormShopDirectory {
	return &GormShopDirectory{db: db}
}

func (d *GormShopDirectory) GetShop(ctx context.Context, shopID string) (booking.ShopContext, error) {
	id, err := uuid.Parse(shopID)
	if err != nil {
		return booking.ShopContext{}, ErrShopNotFound
	}
	var shop models.Shop
	if err := d.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.ShopContext{}, ErrShopNotFound
		}
		return booking.ShopContext{}, fmt.Errorf("load shop %s: %w", shopID, err)
	}
	return shop.Context(), nil
}

func (d *GormShopDirectory) GetServices(ctx context.Context, shopID string) ([]booking.Service, error) {
	var rows []models.Service
	if err := d.db.WithContext(ctx).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load services for shop %s: %w", shopID, err)
	}
	services := make([]booking.Service, len(rows))
	for i := range rows {
		services[i] = rows[i].CatalogEntry()
	}
	return services, nil
}

func (d *GormShopDirectory) GetBarbers(ctx context.Context, shopID string) ([]booking.Barber, error) {
	var rows []models.Barber
	if err := d.db.WithContext(ctx).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load barbers for shop %s: %w", shopID, err)
	}
	barbers := make([]booking.Barber, len(rows))
	for i := range rows {
		barbers[i] = rows[i].CatalogEntry()
	}
	return barbers, nil
}

// Catalog is everything the booking screen shows for one shop. Parts that
// failed to load are empty and named in Failures.
type Catalog struct {
	Shop     *booking.ShopContext     `json:"shop,omitempty"`
	Slots    []booking.TimeSlotWindow `json:"slots"`
	Services []booking.Service        `json:"services"`
	Barbers  []booking.Barber         `json:"barbers"`
	Failures map[string]string        `json:"failures,omitempty"`

	errs map[string]error
}

// ShopErr is the error that stopped the shop itself from loading, if any.
func (c *Catalog) ShopErr() error {
	return c.errs["shop"]
}

// LoadCatalog fetches the shop, its services and its barbers concurrently.
// A failing part does not stop the others.
func LoadCatalog(ctx context.Context, dir ShopDirectory, shopID string) *Catalog {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		catalog = &Catalog{
			Services: []booking.Service{},
			Barbers:  []booking.Barber{},
			Slots:    []booking.TimeSlotWindow{},
			errs:     map[string]error{},
		}
	)

	fail := func(part string, err error) {
		zap.L().Warn("catalog part failed",
			zap.String("shopId", shopID),
			zap.String("part", part),
			zap.Error(err))
		mu.Lock()
		catalog.errs[part] = err
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		shop, err := dir.GetShop(ctx, shopID)
		if err != nil {
			fail("shop", err)
			return
		}
		mu.Lock()
		catalog.Shop = &shop
		catalog.Slots = shop.Slots()
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		services, err := dir.GetServices(ctx, shopID)
		if err != nil {
			fail("services", err)
			return
		}
		mu.Lock()
		catalog.Services = services
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		barbers, err := dir.GetBarbers(ctx, shopID)
		if err != nil {
			fail("barbers", err)
			return
		}
		mu.Lock()
		catalog.Barbers = barbers
		mu.Unlock()
	}()
	wg.Wait()

	if len(catalog.errs) > 0 {
		catalog.Failures = make(map[string]string, len(catalog.errs))
		for part, err := range catalog.errs {
			catalog.Failures[part] = err.Error()
		}
	}
	return catalog
}

// FindService returns the service with the given id.
func FindService(services []booking.Service, id string) (booking.Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return booking.Service{}, false
}

// FindBarber returns the barber with the given id.
func FindBarber(barbers []booking.Barber, id string) (booking.Barber, bool) {
	for _, b := range barbers {
		if b.ID == id {
			return b, true
		}
	}
	return booking.Barber{}, false
}
