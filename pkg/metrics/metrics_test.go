package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := NewServerMetrics("middlewaretest")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{productID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(r)
	defer server.Close()

	// Distinct ids must collapse into one label value.
	for i := 0; i < 3; i++ {
		resp, err := http.Get(fmt.Sprintf("%s/products/%s", server.URL, uuid.NewString()))
		require.NoError(t, err)
		resp.Body.Close()
	}

	count := testutil.ToFloat64(m.Requests.WithLabelValues("/products/{productID}", "200"))
	assert.Equal(t, float64(3), count)
}
