package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quickeats/quickeats/internal/entity"
)

// ListRestaurants returns active restaurants in insertion order.
func (s *Store) ListRestaurants(ctx context.Context) []entity.Restaurant {
	_, span := storeTracer.Start(ctx, "Store.ListRestaurants")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Restaurant, 0, len(s.restaurantIDs))
	for _, id := range s.restaurantIDs {
		if r, ok := s.restaurants[id]; ok && r.IsActive {
			out = append(out, r)
		}
	}
	span.SetAttributes(attribute.Int("restaurant.count", len(out)))
	return out
}

// GetRestaurant fetches a restaurant by id, active or not.
func (s *Store) GetRestaurant(ctx context.Context, id int64) (entity.Restaurant, error) {
	_, span := storeTracer.Start(ctx, "Store.GetRestaurant", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return entity.Restaurant{}, ErrNotFound
	}
	return r, nil
}

// CreateRestaurant assigns the next identifier, forces the record active,
// stores it, and returns the full record.
func (s *Store) CreateRestaurant(ctx context.Context, r entity.Restaurant) entity.Restaurant {
	_, span := storeTracer.Start(ctx, "Store.CreateRestaurant", trace.WithAttributes(attribute.String("restaurant.name", r.Name)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRestaurantID
	s.nextRestaurantID++
	r.IsActive = true

	s.restaurants[r.ID] = r
	s.restaurantIDs = append(s.restaurantIDs, r.ID)

	span.SetAttributes(attribute.Int64("restaurant.id", r.ID))
	return r
}
