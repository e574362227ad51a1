package store

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quickeats/quickeats/internal/entity"
)

// ListMenuItems returns available items belonging to a restaurant, in
// insertion order. Unknown restaurant ids simply yield an empty list.
func (s *Store) ListMenuItems(ctx context.Context, restaurantID int64) []entity.MenuItem {
	_, span := storeTracer.Start(ctx, "Store.ListMenuItems", trace.WithAttributes(attribute.Int64("restaurant.id", restaurantID)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.MenuItem
	for _, id := range s.menuItemIDs {
		item, ok := s.menuItems[id]
		if ok && item.RestaurantID == restaurantID && item.IsAvailable {
			out = append(out, item)
		}
	}
	span.SetAttributes(attribute.Int("menu.count", len(out)))
	return out
}

// GetMenuItem fetches a single menu item by id.
func (s *Store) GetMenuItem(ctx context.Context, id int64) (entity.MenuItem, error) {
	_, span := storeTracer.Start(ctx, "Store.GetMenuItem", trace.WithAttributes(attribute.Int64("menu_item.id", id)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.menuItems[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return entity.MenuItem{}, ErrNotFound
	}
	return item, nil
}

// CreateMenuItem assigns the next identifier and stores the item as
// available. The owning restaurant must already exist.
func (s *Store) CreateMenuItem(ctx context.Context, item entity.MenuItem) (entity.MenuItem, error) {
	_, span := storeTracer.Start(ctx, "Store.CreateMenuItem", trace.WithAttributes(
		attribute.Int64("restaurant.id", item.RestaurantID),
		attribute.String("menu_item.name", item.Name),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[item.RestaurantID]; !ok {
		span.SetStatus(codes.Error, "restaurant not found")
		return entity.MenuItem{}, ErrNotFound
	}

	item.ID = s.nextMenuItemID
	s.nextMenuItemID++
	item.IsAvailable = true

	s.menuItems[item.ID] = item
	s.menuItemIDs = append(s.menuItemIDs, item.ID)

	span.SetAttributes(attribute.Int64("menu_item.id", item.ID))
	return item, nil
}
