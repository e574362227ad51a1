package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quickeats/quickeats/internal/cache"
	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/store"
	"github.com/quickeats/quickeats/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/quickeats/quickeats/service/catalog")

// Service is the read facade over restaurants and menus, plus the create
// operations that extend the seeded catalog.
type Service struct {
	store    *store.Store
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store  *store.Store
	Cache  cache.Store
	Config config.Config
	Logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:    p.Store,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// ListRestaurants returns all active restaurants.
func (s *Service) ListRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.ListRestaurants")
	defer span.End()

	return s.store.ListRestaurants(ctx), nil
}

// GetRestaurant fetches a single restaurant by id.
func (s *Service) GetRestaurant(ctx context.Context, id int64) (entity.Restaurant, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.GetRestaurant", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	r, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return entity.Restaurant{}, errorbank.NotFound("restaurant not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return entity.Restaurant{}, errorbank.Internal("failed to load restaurant", errorbank.WithCause(err))
	}
	return r, nil
}

// Menu returns the available menu items for a restaurant, consulting the
// cache first. The restaurant must exist.
func (s *Service) Menu(ctx context.Context, restaurantID int64) ([]entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.Menu", trace.WithAttributes(attribute.Int64("restaurant.id", restaurantID)))
	defer span.End()

	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	if items, err := s.menuFromCache(ctx, restaurantID); err == nil {
		return items, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("menu cache read failed", zap.Int64("restaurantId", restaurantID), zap.Error(err))
	}

	items := s.store.ListMenuItems(ctx, restaurantID)

	if err := s.storeMenuInCache(ctx, restaurantID, items); err != nil {
		s.logger.Warn("menu cache write failed", zap.Int64("restaurantId", restaurantID), zap.Error(err))
	}

	return items, nil
}

// CreateRestaurant registers a new restaurant.
func (s *Service) CreateRestaurant(ctx context.Context, r entity.Restaurant) (entity.Restaurant, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.CreateRestaurant", trace.WithAttributes(attribute.String("restaurant.name", r.Name)))
	defer span.End()

	if r.Name == "" || r.Cuisine == "" || r.Address == "" {
		return entity.Restaurant{}, errorbank.BadRequest("name, cuisine, and address are required")
	}

	return s.store.CreateRestaurant(ctx, r), nil
}

// CreateMenuItem adds an item under an existing restaurant and invalidates
// that restaurant's cached menu.
func (s *Service) CreateMenuItem(ctx context.Context, item entity.MenuItem) (entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.CreateMenuItem", trace.WithAttributes(
		attribute.Int64("restaurant.id", item.RestaurantID),
		attribute.String("menu_item.name", item.Name),
	))
	defer span.End()

	if item.Name == "" || item.Category == "" {
		return entity.MenuItem{}, errorbank.BadRequest("name and category are required")
	}
	if item.Price <= 0 {
		return entity.MenuItem{}, errorbank.BadRequest("price must be positive")
	}

	created, err := s.store.CreateMenuItem(ctx, item)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return entity.MenuItem{}, errorbank.Unprocessable("restaurant does not exist", errorbank.WithDetail("restaurantId", item.RestaurantID))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return entity.MenuItem{}, errorbank.Internal("failed to create menu item", errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, s.menuCacheKey(item.RestaurantID)); err != nil {
			s.logger.Warn("menu cache invalidation failed", zap.Int64("restaurantId", item.RestaurantID), zap.Error(err))
		}
	}

	return created, nil
}

func (s *Service) menuCacheKey(restaurantID int64) string {
	return fmt.Sprintf("menus:%d", restaurantID)
}

func (s *Service) menuFromCache(ctx context.Context, restaurantID int64) ([]entity.MenuItem, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.menuCacheKey(restaurantID))
	if err != nil {
		return nil, err
	}
	var items []entity.MenuItem
	if err := json.Unmarshal(bytes, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) storeMenuInCache(ctx context.Context, restaurantID int64, items []entity.MenuItem) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.menuCacheKey(restaurantID), bytes, s.cacheTTL)
}
