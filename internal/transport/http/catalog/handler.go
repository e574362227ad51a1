package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickeats/quickeats/internal/dto"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/presentation/http/response"
	service "github.com/quickeats/quickeats/internal/service/catalog"
	"github.com/quickeats/quickeats/pkg/errorbank"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var httpTracer = otel.Tracer("github.com/quickeats/quickeats/transport/http/catalog")

// Handler exposes restaurant and menu endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo group.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/restaurants")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.GET("/:id/menu", h.menu)
	g.POST("/:id/menu", h.createMenuItem)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.list")
	defer span.End()

	restaurants, err := h.svc.ListRestaurants(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toRestaurantDTO(r))
	}
	return b.WithData(out).WithMeta("count", len(out)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.getByID", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	restaurant, err := h.svc.GetRestaurant(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toRestaurantDTO(restaurant)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Name         string `json:"name"`
		Cuisine      string `json:"cuisine"`
		Rating       string `json:"rating"`
		DeliveryTime string `json:"deliveryTime"`
		PriceForTwo  int    `json:"priceForTwo"`
		Image        string `json:"image"`
		Address      string `json:"address"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.create", trace.WithAttributes(attribute.String("restaurant.name", payload.Name)))
	defer span.End()

	restaurant, err := h.svc.CreateRestaurant(ctx, entity.Restaurant{
		Name:         payload.Name,
		Cuisine:      payload.Cuisine,
		Rating:       payload.Rating,
		DeliveryTime: payload.DeliveryTime,
		PriceForTwo:  payload.PriceForTwo,
		Image:        payload.Image,
		Address:      payload.Address,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toRestaurantDTO(restaurant)).Build()
}

func (h *Handler) menu(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.menu", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	items, err := h.svc.Menu(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemDTO(item))
	}
	return b.WithData(out).WithMeta("count", len(out)).Build()
}

func (h *Handler) createMenuItem(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int    `json:"price"`
		Category    string `json:"category"`
		Image       string `json:"image"`
		IsVeg       bool   `json:"isVeg"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.createMenuItem", trace.WithAttributes(
		attribute.Int64("restaurant.id", id),
		attribute.String("menu_item.name", payload.Name),
	))
	defer span.End()

	item, err := h.svc.CreateMenuItem(ctx, entity.MenuItem{
		RestaurantID: id,
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		Category:     payload.Category,
		Image:        payload.Image,
		IsVeg:        payload.IsVeg,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toMenuItemDTO(item)).Build()
}

func toRestaurantDTO(r entity.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Rating:       r.Rating,
		DeliveryTime: r.DeliveryTime,
		PriceForTwo:  r.PriceForTwo,
		Image:        r.Image,
		Address:      r.Address,
		IsActive:     r.IsActive,
	}
}

func toMenuItemDTO(item entity.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		Category:     item.Category,
		Image:        item.Image,
		IsVeg:        item.IsVeg,
		IsAvailable:  item.IsAvailable,
	}
}
