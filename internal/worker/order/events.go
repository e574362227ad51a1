package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/messaging"
	ordersvc "github.com/quickeats/quickeats/internal/service/order"
	"github.com/quickeats/quickeats/internal/worker"
)

var workerTracer = otel.Tracer("github.com/quickeats/quickeats/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderEventHandler sets up a worker handler that processes order
// creations and status changes emitted by the order service.
func NewOrderEventHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		span.SetAttributes(attribute.String("order.event", event.Type))

		switch event.Type {
		case "order.created":
			logger.Info("order placed",
				zap.Int64("id", event.ID),
				zap.String("number", event.Number),
				zap.Int("total", event.Total),
			)
		case "order.status_changed":
			logger.Info("order status changed",
				zap.Int64("id", event.ID),
				zap.String("number", event.Number),
				zap.String("status", event.Status),
			)
		default:
			logger.Warn("unrecognized order event", zap.String("type", event.Type))
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
