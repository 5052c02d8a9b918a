package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/catalog/domain"
	"storefront/internal/catalog/repository/product_repo"
)

// memProductRepository is an in-memory ProductRepository used in tests and
// when no database is available. It mirrors the postgres implementation's
// absence contract (sql.ErrNoRows).
type memProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewProductRepository() product_repo.ProductRepository {
	return &memProductRepository{products: make(map[uuid.UUID]domain.Product)}
}

func (r *memProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	p := product
	return &p, nil
}

func (r *memProductRepository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := product
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *memProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return sql.ErrNoRows
	}
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.products, id)
	return nil
}
