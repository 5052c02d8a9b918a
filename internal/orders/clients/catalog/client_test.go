package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPClient_GetProduct(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/"+id.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"name":"Monitor","price":"499.99","stock":10}`, id)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, zap.NewNop())

	product, found := client.GetProduct(context.Background(), id)
	require.True(t, found)
	assert.Equal(t, id, product.ID)
	assert.Equal(t, "Monitor", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("499.99")))
	assert.Equal(t, 10, product.Stock)
}

func TestHTTPClient_NotFoundIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Product not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, zap.NewNop())

	product, found := client.GetProduct(context.Background(), uuid.New())
	assert.False(t, found)
	assert.Nil(t, product)
}

func TestHTTPClient_MalformedReplyIsAbsent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `garbage`},
		{"bad id", `{"id":"not-a-uuid","name":"X","price":"1.00","stock":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, time.Second, zap.NewNop())

			_, found := client.GetProduct(context.Background(), uuid.New())
			assert.False(t, found)
		})
	}
}

func TestHTTPClient_ServerErrorIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, zap.NewNop())

	_, found := client.GetProduct(context.Background(), uuid.New())
	assert.False(t, found)
	assert.Empty(t, client.GetAvailableProducts(context.Background()))
}

func TestHTTPClient_GetAvailableProductsFiltersStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items":[
			{"id":%q,"name":"Monitor","price":"499.99","stock":10},
			{"id":%q,"name":"Webcam","price":"59.00","stock":0},
			{"id":"not-a-uuid","name":"Broken","price":"1.00","stock":3}
		]}`, uuid.New(), uuid.New())
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, zap.NewNop())

	products := client.GetAvailableProducts(context.Background())
	require.Len(t, products, 1, "out-of-stock and malformed entries are dropped")
	assert.Equal(t, "Monitor", products[0].Name)
}

// The fault-isolation contract: when the catalog endpoint is unreachable,
// both transports report absence instead of an error.
func TestClients_UnreachableEndpointIsAbsent(t *testing.T) {
	// A closed listener address: nothing is listening on port 1 locally.
	httpDown := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())
	rpcDown := NewRPCClient("127.0.0.1:1", 200*time.Millisecond, zap.NewNop())

	for name, client := range map[string]Client{"http": httpDown, "rpc": rpcDown} {
		t.Run(name, func(t *testing.T) {
			product, found := client.GetProduct(context.Background(), uuid.New())
			assert.False(t, found)
			assert.Nil(t, product)

			products := client.GetAvailableProducts(context.Background())
			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func TestRPCClient_ExpiredContextFailsFast(t *testing.T) {
	client := NewRPCClient("127.0.0.1:1", time.Second, zap.NewNop())

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, found := client.GetProduct(ctx, uuid.New())
	assert.False(t, found)
}
