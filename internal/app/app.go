package app

import (
	"go.uber.org/fx"

	"github.com/quickeats/quickeats/internal/cache"
	"github.com/quickeats/quickeats/internal/config"
	"github.com/quickeats/quickeats/internal/logger"
	"github.com/quickeats/quickeats/internal/messaging"
	"github.com/quickeats/quickeats/internal/observability"
	"github.com/quickeats/quickeats/internal/seeder"
	grpcserver "github.com/quickeats/quickeats/internal/server/grpc"
	httpserver "github.com/quickeats/quickeats/internal/server/http"
	servicecatalog "github.com/quickeats/quickeats/internal/service/catalog"
	serviceorder "github.com/quickeats/quickeats/internal/service/order"
	"github.com/quickeats/quickeats/internal/store"
	transporthttp "github.com/quickeats/quickeats/internal/transport/http"
	"github.com/quickeats/quickeats/internal/worker"
	workerorder "github.com/quickeats/quickeats/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	store.Module,
	seeder.Module,
	servicecatalog.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP and gRPC transports on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP + gRPC).
var Module = HTTP
