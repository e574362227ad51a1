package order

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickeats/quickeats/internal/dto"
	"github.com/quickeats/quickeats/internal/entity"
	"github.com/quickeats/quickeats/internal/presentation/http/response"
	service "github.com/quickeats/quickeats/internal/service/order"
	"github.com/quickeats/quickeats/pkg/errorbank"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var httpTracer = otel.Tracer("github.com/quickeats/quickeats/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo group.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/orders")
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.GET("/number/:number", h.getByNumber)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		RestaurantID    int64                  `json:"restaurantId"`
		Items           []dto.OrderItemPayload `json:"items"`
		Subtotal        int                    `json:"subtotal"`
		DeliveryFee     int                    `json:"deliveryFee"`
		Total           int                    `json:"total"`
		DeliveryAddress string                 `json:"deliveryAddress"`
		CustomerName    string                 `json:"customerName"`
		CustomerPhone   string                 `json:"customerPhone"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	items := make([]entity.OrderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, entity.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int64("restaurant.id", payload.RestaurantID),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	order, err := h.svc.Create(ctx, service.CreateInput{
		RestaurantID:    payload.RestaurantID,
		Items:           items,
		Subtotal:        payload.Subtotal,
		DeliveryFee:     payload.DeliveryFee,
		Total:           payload.Total,
		DeliveryAddress: payload.DeliveryAddress,
		CustomerName:    payload.CustomerName,
		CustomerPhone:   payload.CustomerPhone,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(order)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func (h *Handler) getByNumber(c echo.Context) error {
	b := response.New(c)

	number := c.Param("number")
	if number == "" {
		return b.WithError(errorbank.BadRequest("order number is required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := h.svc.GetByNumber(ctx, number)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.Status == "" {
		return b.WithError(errorbank.BadRequest("status is required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	order, err := h.svc.UpdateStatus(ctx, id, payload.Status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func toDTO(order entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			ID:       item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.Number,
		RestaurantID:    order.RestaurantID,
		Items:           items,
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		Total:           order.Total,
		Status:          string(order.Status),
		DeliveryAddress: order.DeliveryAddress,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
