package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickeats/quickeats/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 9090, cfg.GRPC.Port)
	assert.Equal(t, 40, cfg.Pricing.DeliveryFee)
	assert.True(t, cfg.Seed.OnStart)
	assert.Equal(t, "quickeats", cfg.Observability.ServiceName)
	assert.Equal(t, "orders.events", cfg.Messaging.Kafka.Topic)

	// Cache and messaging fall back to noop drivers when disabled.
	assert.Equal(t, "noop", cfg.Cache.Driver)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("PRICING_DELIVERY_FEE", "55")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DEFAULT_TTL", "30s")

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, 55, cfg.Pricing.DeliveryFee)
	assert.False(t, cfg.Seed.OnStart)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative http port", key: "HTTP_PORT", value: "-1"},
		{name: "negative delivery fee", key: "PRICING_DELIVERY_FEE", value: "-5"},
		{name: "unknown cache driver", key: "CACHE_DRIVER", value: "memcached"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if testCase.key == "CACHE_DRIVER" {
				t.Setenv("CACHE_ENABLED", "true")
			}
			t.Setenv(testCase.key, testCase.value)

			_, err := config.New()
			assert.Error(t, err)
		})
	}
}
