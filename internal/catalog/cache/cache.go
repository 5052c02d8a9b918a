package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/catalog/domain"
)

// CachedProduct is the serialized snapshot stored in the cache. It carries
// the same fields as domain.Product but is decoupled from it so the cached
// representation can evolve independently of the store schema.
type CachedProduct struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func SnapshotProduct(p *domain.Product) CachedProduct {
	return CachedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (c CachedProduct) ToDomain() *domain.Product {
	return &domain.Product{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Stock:       c.Stock,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ProductCache is a lookaside cache for single products and the full product
// list. Callers must treat (nil/empty, false, nil) exactly like a miss: a
// disabled cache and a cold cache are indistinguishable.
//
// Set always also drops the list key, since a single-item write makes a
// previously cached list stale. SetAll populates only the list key; per-item
// entries are filled lazily by individual reads. RemoveAll drops the list key.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*CachedProduct, bool, error)
	GetAll(ctx context.Context) ([]CachedProduct, bool, error)
	Set(ctx context.Context, id uuid.UUID, view CachedProduct) error
	SetAll(ctx context.Context, views []CachedProduct) error
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveAll(ctx context.Context) error
}

// Options carries the expiration policy shared by every backend. Absolute
// expiration is always armed; a zero Sliding window disables sliding refresh.
type Options struct {
	KeyPrefix string
	Absolute  time.Duration
	Sliding   time.Duration
}

func (o Options) ItemKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", o.KeyPrefix, id)
}

func (o Options) ListKey() string {
	return fmt.Sprintf("%s:all", o.KeyPrefix)
}

// NewNoop returns the disabled-cache backend: every operation is a no-op
// reporting a miss, so callers degrade to the store transparently.
func NewNoop() ProductCache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id uuid.UUID) (*CachedProduct, bool, error) {
	return nil, false, nil
}

func (noopCache) GetAll(ctx context.Context) ([]CachedProduct, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(ctx context.Context, id uuid.UUID, view CachedProduct) error { return nil }

func (noopCache) SetAll(ctx context.Context, views []CachedProduct) error { return nil }

func (noopCache) Remove(ctx context.Context, id uuid.UUID) error { return nil }

func (noopCache) RemoveAll(ctx context.Context) error { return nil }
