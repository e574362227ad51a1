package seeder

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/store"
)

// Seeder loads the fixed demo catalog into the in-memory store. The store
// starts empty on every boot, so this runs at startup unless disabled.
type Seeder struct {
	store  *store.Store
	logger *zap.Logger
}

// Module wires the seeder and runs it on application start when enabled.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, s *Seeder) {
		if !cfg.Seed.OnStart {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return s.Catalog(ctx)
			},
		})
	}),
)

// New constructs a Seeder backed by the entity store.
func New(s *store.Store, logger *zap.Logger) *Seeder {
	return &Seeder{store: s, logger: logger}
}

// Catalog seeds the demo restaurants and the menu for the first restaurant.
func (s *Seeder) Catalog(ctx context.Context) error {
	restaurants := []entity.Restaurant{
		{
			Name:         "Spice Garden",
			Cuisine:      "Indian, North Indian, Biryani",
			Rating:       "4.3",
			DeliveryTime: "25-30 mins",
			PriceForTwo:  300,
			Image:        "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=240",
			Address:      "Downtown, San Francisco",
		},
		{
			Name:         "Pizza Palace",
			Cuisine:      "Pizza, Italian, Fast Food",
			Rating:       "4.5",
			DeliveryTime: "20-25 mins",
			PriceForTwo:  400,
			Image:        "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=240",
			Address:      "Downtown, San Francisco",
		},
		{
			Name:         "Burger Hub",
			Cuisine:      "Burgers, American, Fast Food",
			Rating:       "4.2",
			DeliveryTime: "15-20 mins",
			PriceForTwo:  350,
			Image:        "https://images.unsplash.com/photo-1571091718767-18b5b1457add?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=240",
			Address:      "Downtown, San Francisco",
		},
		{
			Name:         "Sushi Zen",
			Cuisine:      "Japanese, Sushi, Asian",
			Rating:       "4.6",
			DeliveryTime: "30-35 mins",
			PriceForTwo:  800,
			Image:        "https://images.unsplash.com/photo-1579952363873-27d3bfad9c0d?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=240",
			Address:      "Downtown, San Francisco",
		},
	}

	for _, r := range restaurants {
		s.store.CreateRestaurant(ctx, r)
	}

	// Menu for Spice Garden, the first seeded restaurant.
	spiceGardenID := int64(1)
	menu := []entity.MenuItem{
		{
			RestaurantID: spiceGardenID,
			Name:         "Paneer Tikka",
			Description:  "Grilled cottage cheese marinated in aromatic spices",
			Price:        280,
			Category:     "Starters",
			Image:        "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        true,
		},
		{
			RestaurantID: spiceGardenID,
			Name:         "Chicken Tikka",
			Description:  "Tender chicken marinated in yogurt and spices",
			Price:        320,
			Category:     "Starters",
			Image:        "https://images.unsplash.com/photo-1603496987351-f84a3ba5ec85?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        false,
		},
		{
			RestaurantID: spiceGardenID,
			Name:         "Butter Chicken",
			Description:  "Tender chicken in rich tomato and butter gravy",
			Price:        380,
			Category:     "Main Course",
			Image:        "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        false,
		},
		{
			RestaurantID: spiceGardenID,
			Name:         "Chicken Biryani",
			Description:  "Aromatic basmati rice with spiced chicken and saffron",
			Price:        420,
			Category:     "Main Course",
			Image:        "https://images.unsplash.com/photo-1563379091339-03246963d96c?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        false,
		},
		{
			RestaurantID: spiceGardenID,
			Name:         "Dal Tadka",
			Description:  "Yellow lentils tempered with cumin and spices",
			Price:        220,
			Category:     "Main Course",
			Image:        "https://images.unsplash.com/photo-1546833999-b9f581a1996d?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        true,
		},
		{
			RestaurantID: spiceGardenID,
			Name:         "Gulab Jamun",
			Description:  "Soft milk dumplings in sweet cardamom syrup",
			Price:        120,
			Category:     "Desserts",
			Image:        "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?ixlib=rb-4.0.3&auto=format&fit=crop&w=100&h=80",
			IsVeg:        true,
		},
	}

	for _, item := range menu {
		if _, err := s.store.CreateMenuItem(ctx, item); err != nil {
			return fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded demo catalog",
			zap.Int("restaurants", len(restaurants)),
			zap.Int("menuItems", len(menu)),
		)
	}
	return nil
}
