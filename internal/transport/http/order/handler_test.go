package order_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickeats/quickeats/internal/cache"
	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/messaging"
	ordersvc "github.com/quickeats/quickeats/internal/service/order"
	"github.com/quickeats/quickeats/internal/store"
	transport "github.com/quickeats/quickeats/internal/transport/http/order"
)

func newTestServer(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()
	st := store.New()
	svc := ordersvc.NewService(ordersvc.Params{
		Store:     st,
		Cache:     cache.Noop(),
		Config:    config.Config{Pricing: config.Pricing{DeliveryFee: 40}},
		Logger:    zap.NewNop(),
		Publisher: messaging.Noop("orders.events"),
	})

	e := echo.New()
	transport.Register(e, transport.NewHandler(svc))
	return e, st
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validOrderBody = `{
	"restaurantId": 1,
	"items": [
		{"id": 3, "name": "Butter Chicken", "price": 380, "quantity": 1, "image": ""},
		{"id": 5, "name": "Dal Tadka", "price": 220, "quantity": 1, "image": ""}
	],
	"subtotal": 600,
	"deliveryFee": 40,
	"total": 640,
	"deliveryAddress": "221B Baker Street",
	"customerName": "Asha",
	"customerPhone": "9876543210"
}`

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "valid order", body: validOrderBody, wantCode: http.StatusCreated},
		{name: "invalid JSON", body: `{invalid}`, wantCode: http.StatusBadRequest},
		{
			name: "mismatched total",
			body: strings.Replace(validOrderBody, `"total": 640`, `"total": 600`, 1),
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "empty cart",
			body: `{"restaurantId":1,"items":[],"subtotal":0,"deliveryFee":40,"total":40,"deliveryAddress":"A","customerName":"B","customerPhone":"C"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			e, st := newTestServer(t)
			st.CreateRestaurant(context.Background(), entity.Restaurant{Name: "Spice Garden", Cuisine: "Indian", Address: "Downtown"})

			rec := doJSON(e, http.MethodPost, "/api/orders", testCase.body)
			assert.Equal(t, testCase.wantCode, rec.Code)
		})
	}
}

func TestCreateOrderHandlerResponseBody(t *testing.T) {
	e, st := newTestServer(t)
	st.CreateRestaurant(context.Background(), entity.Restaurant{Name: "Spice Garden", Cuisine: "Indian", Address: "Downtown"})

	rec := doJSON(e, http.MethodPost, "/api/orders", validOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ID          int64  `json:"id"`
			OrderNumber string `json:"orderNumber"`
			Status      string `json:"status"`
			Total       int    `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Regexp(t, `^QE[A-Z0-9]{5}$`, envelope.Data.OrderNumber)
	assert.Equal(t, "confirmed", envelope.Data.Status)
	assert.Equal(t, 640, envelope.Data.Total)
}

func TestGetOrderByNumberHandler(t *testing.T) {
	e, st := newTestServer(t)
	st.CreateRestaurant(context.Background(), entity.Restaurant{Name: "Spice Garden", Cuisine: "Indian", Address: "Downtown"})

	rec := doJSON(e, http.MethodPost, "/api/orders", validOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			OrderNumber string `json:"orderNumber"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	got := doJSON(e, http.MethodGet, "/api/orders/number/"+created.Data.OrderNumber, "")
	assert.Equal(t, http.StatusOK, got.Code)

	missing := doJSON(e, http.MethodGet, "/api/orders/number/QEZZZZZ", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	e, st := newTestServer(t)
	st.CreateRestaurant(context.Background(), entity.Restaurant{Name: "Spice Garden", Cuisine: "Indian", Address: "Downtown"})

	rec := doJSON(e, http.MethodPost, "/api/orders", validOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/orders/" + strconv.FormatInt(created.Data.ID, 10) + "/status"

	ok := doJSON(e, http.MethodPatch, path, `{"status":"preparing"}`)
	assert.Equal(t, http.StatusOK, ok.Code)

	backward := doJSON(e, http.MethodPatch, path, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, backward.Code)

	unknown := doJSON(e, http.MethodPatch, path, `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, unknown.Code)

	missing := doJSON(e, http.MethodPatch, "/api/orders/999/status", `{"status":"preparing"}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
