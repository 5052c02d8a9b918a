package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the orders service's own read model of a catalog product.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
}

// Client is the downstream read-only view of the catalog service. Both
// transports share one failure contract: any transport-level error (timeout,
// connection refusal, malformed reply, not-found) is absorbed at this
// boundary and surfaces as an absent product or an empty list, with a warning
// in the log. The ordering workflow therefore degrades identically whether
// the catalog is down or the product genuinely does not exist.
type Client interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, bool)
	GetAvailableProducts(ctx context.Context) []Product
}
