package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickeats/quickeats/internal/cache"
	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/service/catalog"
	"github.com/quickeats/quickeats/internal/store"
	"github.com/quickeats/quickeats/pkg/errorbank"
)

func newTestService(t *testing.T) (*catalog.Service, *store.Store) {
	t.Helper()
	st := store.New()
	svc := catalog.NewService(catalog.Params{
		Store:  st,
		Cache:  cache.Noop(),
		Config: config.Config{},
		Logger: zap.NewNop(),
	})
	return svc, st
}

func TestListRestaurants(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	st.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	st.CreateRestaurant(ctx, entity.Restaurant{Name: "Two", Cuisine: "B", Address: "Y"})

	listed, err := svc.ListRestaurants(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestGetRestaurantNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetRestaurant(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestMenu(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	r := st.CreateRestaurant(ctx, entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})
	_, err := st.CreateMenuItem(ctx, entity.MenuItem{RestaurantID: r.ID, Name: "Soup", Category: "Starters", Price: 100})
	require.NoError(t, err)

	items, err := svc.Menu(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Soup", items[0].Name)
}

func TestMenuUnknownRestaurant(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Menu(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestCreateRestaurantValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   entity.Restaurant
		wantErr bool
	}{
		{
			name:  "valid",
			input: entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"},
		},
		{
			name:    "missing name",
			input:   entity.Restaurant{Cuisine: "A", Address: "X"},
			wantErr: true,
		},
		{
			name:    "missing address",
			input:   entity.Restaurant{Name: "One", Cuisine: "A"},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			created, err := svc.CreateRestaurant(context.Background(), testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.True(t, created.IsActive)
		})
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    func(restaurantID int64) entity.MenuItem
		wantKind errorbank.Kind
	}{
		{
			name: "missing name",
			input: func(id int64) entity.MenuItem {
				return entity.MenuItem{RestaurantID: id, Category: "Starters", Price: 100}
			},
			wantKind: errorbank.KindBadRequest,
		},
		{
			name: "non-positive price",
			input: func(id int64) entity.MenuItem {
				return entity.MenuItem{RestaurantID: id, Name: "Soup", Category: "Starters", Price: 0}
			},
			wantKind: errorbank.KindBadRequest,
		},
		{
			name: "unknown restaurant",
			input: func(id int64) entity.MenuItem {
				return entity.MenuItem{RestaurantID: id + 100, Name: "Soup", Category: "Starters", Price: 100}
			},
			wantKind: errorbank.KindUnprocessableEntity,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, st := newTestService(t)
			r := st.CreateRestaurant(context.Background(), entity.Restaurant{Name: "One", Cuisine: "A", Address: "X"})

			_, err := svc.CreateMenuItem(context.Background(), testCase.input(r.ID))
			require.Error(t, err)
			assert.Equal(t, testCase.wantKind, errorbank.From(err).Kind())
		})
	}
}
