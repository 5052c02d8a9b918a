package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTPPort)
	assert.Equal(t, ":9081", cfg.RPCAddr)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, "catalog:products", cfg.CacheKeyPrefix)
	assert.Equal(t, 10*time.Minute, cfg.CacheAbsoluteExpiration)
	assert.Equal(t, time.Duration(0), cfg.CacheSlidingExpiration)
	assert.Equal(t, MessagingProviderLog, cfg.MessagingProvider)
	assert.Equal(t, "catalog.events", cfg.KafkaEventsTopic)
	assert.True(t, cfg.EnableListEndpoint)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CATALOG_HTTP_PORT", "9000")
	t.Setenv("CATALOG_CACHE_BACKEND", "redis")
	t.Setenv("CATALOG_CACHE_ABSOLUTE_EXPIRATION", "30m")
	t.Setenv("CATALOG_CACHE_SLIDING_EXPIRATION", "5m")
	t.Setenv("CATALOG_MESSAGING_PROVIDER", "kafka")
	t.Setenv("KAFKA_BROKER_URL", "kafka:9092")
	t.Setenv("CATALOG_ENABLE_LIST", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 30*time.Minute, cfg.CacheAbsoluteExpiration)
	assert.Equal(t, 5*time.Minute, cfg.CacheSlidingExpiration)
	assert.Equal(t, MessagingProviderKafka, cfg.MessagingProvider)
	assert.Equal(t, []string{"kafka:9092"}, cfg.GetKafkaBrokers())
	assert.False(t, cfg.EnableListEndpoint)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "CATALOG_HTTP_PORT", "not-a-port"},
		{"unknown cache backend", "CATALOG_CACHE_BACKEND", "memcached"},
		{"zero absolute expiration", "CATALOG_CACHE_ABSOLUTE_EXPIRATION", "0s"},
		{"negative sliding expiration", "CATALOG_CACHE_SLIDING_EXPIRATION", "-1m"},
		{"unknown messaging provider", "CATALOG_MESSAGING_PROVIDER", "rabbitmq"},
		{"bad list flag", "CATALOG_ENABLE_LIST", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=catalog_db sslmode=disable",
		cfg.GetDBConnectionString())
	assert.Equal(t,
		"postgres:postgres@localhost:5432/catalog_db?sslmode=disable",
		cfg.GetDBMigrationConnectionString())
}
