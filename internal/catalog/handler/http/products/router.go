package products

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/catalog/app/catalog"
)

// RegisterRoutes wires the product endpoints. The list endpoint is gated by
// a feature flag so read-heavy deployments can disable it.
func RegisterRoutes(r chi.Router, s catalog.CatalogService, enableList bool, l *zap.Logger) {
	handler := NewProductHandler(s, l.With(zap.String("component", "ProductHTTPHandler")))

	r.Route("/products", func(r chi.Router) {
		r.Post("/", handler.CreateProduct)
		if enableList {
			r.Get("/", handler.ListProducts)
		}
		r.Get("/{productID}", handler.GetProduct)
		r.Put("/{productID}", handler.UpdateProduct)
		r.Delete("/{productID}", handler.DeleteProduct)
	})
}
