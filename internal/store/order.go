package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quickeats/quickeats/internal/entity"
)

const (
	orderNumberPrefix   = "QE"
	orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberLength   = 5

	// Attempts before giving up on a collision-free number. The space is
	// 36^5 entries, so more than one retry is already unlikely.
	orderNumberAttempts = 10
)

// CreateOrder assigns the next identifier, generates a unique order number,
// stamps timestamps, and stores a snapshot copy of the line items.
func (s *Store) CreateOrder(ctx context.Context, order entity.Order) (entity.Order, error) {
	_, span := storeTracer.Start(ctx, "Store.CreateOrder", trace.WithAttributes(attribute.Int64("restaurant.id", order.RestaurantID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.uniqueOrderNumber()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "number generation failed")
		return entity.Order{}, err
	}

	now := time.Now().UTC()
	order.ID = s.nextOrderID
	s.nextOrderID++
	order.Number = number
	order.CreatedAt = now
	order.UpdatedAt = now
	order.Items = append([]entity.OrderItem(nil), order.Items...)

	s.orders[order.ID] = order
	s.ordersByNumber[order.Number] = order.ID

	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("order.number", order.Number),
	)
	return cloneOrder(order), nil
}

// GetOrder fetches an order by its internal identifier.
func (s *Store) GetOrder(ctx context.Context, id int64) (entity.Order, error) {
	_, span := storeTracer.Start(ctx, "Store.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return entity.Order{}, ErrNotFound
	}
	return cloneOrder(order), nil
}

// GetOrderByNumber performs an exact-match lookup on the generated number.
func (s *Store) GetOrderByNumber(ctx context.Context, number string) (entity.Order, error) {
	_, span := storeTracer.Start(ctx, "Store.GetOrderByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ordersByNumber[number]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return entity.Order{}, ErrNotFound
	}
	return cloneOrder(s.orders[id]), nil
}

// UpdateOrderStatus advances the status field and returns the updated
// record. The forward-only check runs under the write lock so concurrent
// updates cannot both validate against a stale status.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (entity.Order, error) {
	_, span := storeTracer.Start(ctx, "Store.UpdateOrderStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return entity.Order{}, ErrNotFound
	}

	if !order.Status.CanAdvanceTo(status) {
		span.SetStatus(codes.Error, "invalid transition")
		return entity.Order{}, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	s.orders[id] = order

	return cloneOrder(order), nil
}

// uniqueOrderNumber generates numbers until one is free. Callers must hold
// the write lock.
func (s *Store) uniqueOrderNumber() (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := randomOrderNumber()
		if err != nil {
			return "", err
		}
		if _, taken := s.ordersByNumber[number]; !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("order number space exhausted after %d attempts", orderNumberAttempts)
}

func randomOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(buf), nil
}

// cloneOrder returns a copy whose item slice is detached from the stored
// record, preserving the snapshot invariant.
func cloneOrder(order entity.Order) entity.Order {
	order.Items = append([]entity.OrderItem(nil), order.Items...)
	return order
}
