package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/store"
)

var orderNumberPattern = regexp.MustCompile(`^QE[A-Z0-9]{5}$`)

func TestCreateRestaurantAssignsSequentialIDs(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "Test", Cuisine: "Fusion", Address: "Somewhere"})
		assert.Greater(t, r.ID, lastID, "identifiers must be strictly increasing")
		assert.True(t, r.IsActive, "new restaurants start active")
		lastID = r.ID
	}
	assert.Equal(t, int64(5), lastID)
}

func TestGetRestaurantAfterCreate(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	created := s.CreateRestaurant(ctx, entity.Restaurant{
		Name:         "Spice Garden",
		Cuisine:      "Indian",
		Rating:       "4.3",
		DeliveryTime: "25-30 mins",
		PriceForTwo:  300,
		Address:      "Downtown",
	})

	got, err := s.GetRestaurant(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetRestaurantNotFound(t *testing.T) {
	s := store.New()

	_, err := s.GetRestaurant(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListRestaurantsReturnsActiveOnly(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	first := s.CreateRestaurant(ctx, entity.Restaurant{Name: "First", Cuisine: "A", Address: "X"})
	second := s.CreateRestaurant(ctx, entity.Restaurant{Name: "Second", Cuisine: "B", Address: "Y"})

	listed := s.ListRestaurants(ctx)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID, "insertion order preserved")
	assert.Equal(t, second.ID, listed[1].ID)
}

func TestListMenuItemsFiltersByRestaurant(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r1 := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	r2 := s.CreateRestaurant(ctx, entity.Restaurant{Name: "Two", Cuisine: "B", Address: "Y"})

	_, err := s.CreateMenuItem(ctx, entity.MenuItem{RestaurantID: r1.ID, Name: "Soup", Category: "Starters", Price: 100})
	require.NoError(t, err)
	_, err = s.CreateMenuItem(ctx, entity.MenuItem{RestaurantID: r2.ID, Name: "Pasta", Category: "Main Course", Price: 250})
	require.NoError(t, err)
	_, err = s.CreateMenuItem(ctx, entity.MenuItem{RestaurantID: r1.ID, Name: "Cake", Category: "Desserts", Price: 150})
	require.NoError(t, err)

	items := s.ListMenuItems(ctx, r1.ID)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, r1.ID, item.RestaurantID)
		assert.True(t, item.IsAvailable)
	}

	assert.Empty(t, s.ListMenuItems(ctx, 999), "unknown restaurant yields an empty menu")
}

func TestGetMenuItemAfterCreate(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	created, err := s.CreateMenuItem(ctx, entity.MenuItem{
		RestaurantID: r.ID,
		Name:         "Paneer Tikka",
		Description:  "Grilled cottage cheese marinated in aromatic spices",
		Price:        280,
		Category:     "Starters",
		IsVeg:        true,
	})
	require.NoError(t, err)

	got, err := s.GetMenuItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetMenuItem(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateMenuItemRequiresRestaurant(t *testing.T) {
	s := store.New()

	_, err := s.CreateMenuItem(context.Background(), entity.MenuItem{RestaurantID: 7, Name: "Ghost Dish", Category: "Main Course", Price: 100})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateOrder(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})

	order, err := s.CreateOrder(ctx, entity.Order{
		RestaurantID: r.ID,
		Items: []entity.OrderItem{
			{ItemID: 1, Name: "Paneer Tikka", Price: 280, Quantity: 2},
		},
		Subtotal:        560,
		DeliveryFee:     40,
		Total:           600,
		Status:          entity.StatusConfirmed,
		DeliveryAddress: "221B Baker Street",
		CustomerName:    "Asha",
		CustomerPhone:   "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.Regexp(t, orderNumberPattern, order.Number)
	assert.Equal(t, 600, order.Total)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
}

func TestCreateOrderSnapshotIsDetached(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})

	items := []entity.OrderItem{{ItemID: 1, Name: "Dal Tadka", Price: 220, Quantity: 1}}
	order, err := s.CreateOrder(ctx, entity.Order{
		RestaurantID: r.ID, Items: items,
		Subtotal: 220, DeliveryFee: 40, Total: 260,
		Status: entity.StatusConfirmed, DeliveryAddress: "A", CustomerName: "B", CustomerPhone: "C",
	})
	require.NoError(t, err)

	// Mutating the caller's slice and the returned slice must not change
	// the stored record.
	items[0].Price = 1
	order.Items[0].Name = "changed"

	stored, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", stored.Items[0].Name)
	assert.Equal(t, 220, stored.Items[0].Price)
}

func TestGetOrderByNumber(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	created, err := s.CreateOrder(ctx, entity.Order{
		RestaurantID: r.ID,
		Items:        []entity.OrderItem{{ItemID: 1, Name: "Biryani", Price: 420, Quantity: 1}},
		Subtotal:     420, DeliveryFee: 40, Total: 460,
		Status: entity.StatusConfirmed, DeliveryAddress: "A", CustomerName: "B", CustomerPhone: "C",
	})
	require.NoError(t, err)

	got, err := s.GetOrderByNumber(ctx, created.Number)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetOrderByNumber(ctx, "QEXXXXX")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	created, err := s.CreateOrder(ctx, entity.Order{
		RestaurantID: r.ID,
		Items:        []entity.OrderItem{{ItemID: 1, Name: "Biryani", Price: 420, Quantity: 1}},
		Subtotal:     420, DeliveryFee: 40, Total: 460,
		Status: entity.StatusConfirmed, DeliveryAddress: "A", CustomerName: "B", CustomerPhone: "C",
	})
	require.NoError(t, err)

	updated, err := s.UpdateOrderStatus(ctx, created.ID, entity.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, updated.Status)

	// Every other field is untouched.
	updated.Status = created.Status
	updated.UpdatedAt = created.UpdatedAt
	assert.Equal(t, created, updated)

	_, err = s.UpdateOrderStatus(ctx, 999, entity.StatusPreparing)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateOrderStatusRejectsNonForwardMoves(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	created, err := s.CreateOrder(ctx, entity.Order{
		RestaurantID: r.ID,
		Items:        []entity.OrderItem{{ItemID: 1, Name: "Biryani", Price: 420, Quantity: 1}},
		Subtotal:     420, DeliveryFee: 40, Total: 460,
		Status: entity.StatusConfirmed, DeliveryAddress: "A", CustomerName: "B", CustomerPhone: "C",
	})
	require.NoError(t, err)

	// The check runs under the write lock, so a racing update that lands
	// first makes the second one fail instead of rolling the status back.
	_, err = s.UpdateOrderStatus(ctx, created.ID, entity.StatusOutForDelivery)
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ctx, created.ID, entity.StatusPreparing)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	_, err = s.UpdateOrderStatus(ctx, created.ID, entity.StatusOutForDelivery)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	stored, err := s.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutForDelivery, stored.Status)
}

func TestOrderNumbersAreUniquePerOrder(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	r := s.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := s.CreateOrder(ctx, entity.Order{
			RestaurantID: r.ID,
			Items:        []entity.OrderItem{{ItemID: 1, Name: "Item", Price: 100, Quantity: 1}},
			Subtotal:     100, DeliveryFee: 40, Total: 140,
			Status: entity.StatusConfirmed, DeliveryAddress: "A", CustomerName: "B", CustomerPhone: "C",
		})
		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, order.Number)
		assert.False(t, seen[order.Number], "order numbers must not repeat")
		seen[order.Number] = true
	}
}
