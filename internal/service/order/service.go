package order

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
	"github.com/quickeats/quickeats/internal/messaging"
	"github.com/quickeats/quickeats/internal/store"
	"github.com/quickeats/quickeats/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/quickeats/quickeats/service/order")

// CreateInput carries a checkout submission. Subtotal, fee, and total are
// caller-computed; the service verifies them before persisting anything.
type CreateInput struct {
	RestaurantID    int64
	Items           []entity.OrderItem
	Subtotal        int
	DeliveryFee     int
	Total           int
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
}

// Service is the order lifecycle manager: creation, lookup, and
// forward-only status transitions.
type Service struct {
	store     *store.Store
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	fee       int
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store     *store.Store
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:     p.Store,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		fee:       p.Config.Pricing.DeliveryFee,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create validates a checkout submission and persists the order with status
// confirmed. The stored line items are a snapshot of the cart.
func (s *Service) Create(ctx context.Context, in CreateInput) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.Int64("restaurant.id", in.RestaurantID)))
	defer span.End()

	if err := s.validate(ctx, in); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return entity.Order{}, err
	}

	order, err := s.store.CreateOrder(ctx, entity.Order{
		RestaurantID:    in.RestaurantID,
		Items:           in.Items,
		Subtotal:        in.Subtotal,
		DeliveryFee:     in.DeliveryFee,
		Total:           in.Total,
		Status:          entity.StatusConfirmed,
		DeliveryAddress: in.DeliveryAddress,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return entity.Order{}, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", order.ID), zap.Error(err))
	}

	s.publishEvent(ctx, eventOrderCreated, order)

	return order, nil
}

func (s *Service) validate(ctx context.Context, in CreateInput) error {
	if len(in.Items) == 0 {
		return errorbank.BadRequest("order must contain at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return errorbank.BadRequest("item quantity must be at least 1", errorbank.WithDetail("item", item.Name))
		}
	}
	if in.CustomerName == "" || in.CustomerPhone == "" || in.DeliveryAddress == "" {
		return errorbank.BadRequest("customer name, phone, and delivery address are required")
	}
	if in.DeliveryFee != s.fee {
		return errorbank.Unprocessable("unexpected delivery fee",
			errorbank.WithDetail("expected", s.fee),
			errorbank.WithDetail("got", in.DeliveryFee),
		)
	}
	if in.Total != in.Subtotal+in.DeliveryFee {
		return errorbank.Unprocessable("total must equal subtotal plus delivery fee",
			errorbank.WithDetail("subtotal", in.Subtotal),
			errorbank.WithDetail("deliveryFee", in.DeliveryFee),
			errorbank.WithDetail("total", in.Total),
		)
	}
	if _, err := s.store.GetRestaurant(ctx, in.RestaurantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorbank.Unprocessable("restaurant does not exist", errorbank.WithDetail("restaurantId", in.RestaurantID))
		}
		return errorbank.Internal("failed to verify restaurant", errorbank.WithCause(err))
	}
	return nil
}

// Get retrieves an order by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return entity.Order{}, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return entity.Order{}, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
	}

	return order, nil
}

// GetByNumber performs an exact-match lookup on the generated order number.
func (s *Service) GetByNumber(ctx context.Context, number string) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.GetByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := s.store.GetOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return entity.Order{}, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return entity.Order{}, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// UpdateStatus advances an order along the delivery timeline. Unknown
// statuses and backward moves are validation errors.
func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", raw),
	))
	defer span.End()

	status, err := entity.ParseOrderStatus(raw)
	if err != nil {
		span.SetStatus(codes.Error, "unknown status")
		return entity.Order{}, errorbank.Unprocessable(err.Error())
	}

	order, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return entity.Order{}, errorbank.NotFound("order not found")
		case errors.Is(err, store.ErrInvalidTransition):
			span.SetStatus(codes.Error, "invalid transition")
			return entity.Order{}, errorbank.Unprocessable(err.Error())
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, "store error")
			return entity.Order{}, errorbank.Internal("failed to update order", errorbank.WithCause(err))
		}
	}

	if err := s.storeInCache(ctx, order); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", id), zap.Error(err))
	}

	s.publishEvent(ctx, eventOrderStatusChanged, order)

	return order, nil
}

const (
	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is emitted on the bus for order creations and status changes.
type OrderEvent struct {
	Type       string    `json:"type"`
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	Total      int       `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *Service) publishEvent(ctx context.Context, eventType string, order entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderEvent{
		Type:       eventType,
		ID:         order.ID,
		Number:     order.Number,
		Status:     string(order.Status),
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		s.logger.Error("publish order event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (entity.Order, error) {
	if s.cache == nil {
		return entity.Order{}, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return entity.Order{}, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return entity.Order{}, err
	}
	return order, nil
}

func (s *Service) storeInCache(ctx context.Context, order entity.Order) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(order.ID), bytes, s.cacheTTL)
}
