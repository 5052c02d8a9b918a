package product_repo

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/catalog/domain"
)

// ProductRepository is the durable source of truth for catalog products.
// Implementations report absence with sql.ErrNoRows.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
