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

	assert.Equal(t, 8082, cfg.HTTPPort)
	assert.Equal(t, CatalogTransportHTTP, cfg.CatalogTransport)
	assert.Equal(t, "http://localhost:8081", cfg.CatalogHTTPBaseURL)
	assert.Equal(t, "localhost:9081", cfg.CatalogRPCAddr)
	assert.Equal(t, 5*time.Second, cfg.CatalogCallTimeout)
}

func TestLoadConfig_RPCTransport(t *testing.T) {
	t.Setenv("ORDERS_CATALOG_TRANSPORT", "rpc")
	t.Setenv("ORDERS_CATALOG_RPC_ADDR", "catalog:9081")
	t.Setenv("ORDERS_CATALOG_CALL_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CatalogTransportRPC, cfg.CatalogTransport)
	assert.Equal(t, "catalog:9081", cfg.CatalogRPCAddr)
	assert.Equal(t, 2*time.Second, cfg.CatalogCallTimeout)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "ORDERS_HTTP_PORT", "not-a-port"},
		{"unknown transport", "ORDERS_CATALOG_TRANSPORT", "grpc"},
		{"bad timeout", "ORDERS_CATALOG_CALL_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
