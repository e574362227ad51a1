package store

import (
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.uber.org/fx"

	"github.com/quickeats/quickeats/internal/entity"
)

var storeTracer = otel.Tracer("github.com/quickeats/quickeats/store")

// ErrNotFound is returned when a lookup matches no record. Absence is an
// expected outcome, not a fault; callers map it to their own taxonomy.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition is returned when a status update would move an order
// backward or revisit its current status.
var ErrInvalidTransition = errors.New("cannot move order")

// Store is the authoritative in-memory holder of all entities. A single
// instance is constructed at startup and shared by reference; one RWMutex
// serializes access so identifier counters are issued at most once.
type Store struct {
	mu sync.RWMutex

	restaurants map[int64]entity.Restaurant
	menuItems   map[int64]entity.MenuItem
	orders      map[int64]entity.Order

	// insertion order for deterministic listings
	restaurantIDs []int64
	menuItemIDs   []int64

	ordersByNumber map[string]int64

	nextRestaurantID int64
	nextMenuItemID   int64
	nextOrderID      int64
}

// Module provides the store to Fx.
var Module = fx.Provide(New)

// New constructs an empty Store. Seed data is loaded separately by the
// seeder so tests can start from a blank slate.
func New() *Store {
	return &Store{
		restaurants:      make(map[int64]entity.Restaurant),
		menuItems:        make(map[int64]entity.MenuItem),
		orders:           make(map[int64]entity.Order),
		ordersByNumber:   make(map[string]int64),
		nextRestaurantID: 1,
		nextMenuItemID:   1,
		nextOrderID:      1,
	}
}
