package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/gateway/config"
)

func TestNewRouter_RejectsInvalidUpstreamURL(t *testing.T) {
	_, err := NewRouter(&config.Config{
		CatalogServiceURL: "://bad",
		OrdersServiceURL:  "http://localhost:8082",
	})
	assert.Error(t, err)
}

func TestRouter_ProxiesToUpstreams(t *testing.T) {
	catalogUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"service":"catalog","path":%q}`, r.URL.Path)
	}))
	defer catalogUpstream.Close()
	ordersUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"service":"orders","path":%q}`, r.URL.Path)
	}))
	defer ordersUpstream.Close()

	handler, err := NewRouter(&config.Config{
		CatalogServiceURL: catalogUpstream.URL,
		OrdersServiceURL:  ordersUpstream.URL,
	})
	require.NoError(t, err)

	gateway := httptest.NewServer(handler)
	defer gateway.Close()

	tests := []struct {
		path        string
		wantService string
	}{
		{"/products", "catalog"},
		{"/orders", "orders"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(gateway.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Service string `json:"service"`
				Path    string `json:"path"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantService, body.Service)
			assert.Equal(t, tt.path, body.Path)
		})
	}
}

func TestRouter_UnreachableUpstreamMapsToServiceUnavailable(t *testing.T) {
	handler, err := NewRouter(&config.Config{
		CatalogServiceURL: "http://127.0.0.1:1",
		OrdersServiceURL:  "http://127.0.0.1:1",
	})
	require.NoError(t, err)

	gateway := httptest.NewServer(handler)
	defer gateway.Close()

	resp, err := http.Get(gateway.URL + "/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
