package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog/domain"
)

func TestOptionsKeys(t *testing.T) {
	opts := Options{KeyPrefix: "catalog:products"}
	id := uuid.MustParse("6f1c6a2e-74a6-4a8d-b5cb-9a2d6f3f0a01")

	assert.Equal(t, "catalog:products:6f1c6a2e-74a6-4a8d-b5cb-9a2d6f3f0a01", opts.ItemKey(id))
	assert.Equal(t, "catalog:products:all", opts.ListKey())
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        "Monitor",
		Description: "27 inch",
		Price:       decimal.RequireFromString("499.99"),
		Stock:       10,
		CreatedAt:   now,
	}

	restored := SnapshotProduct(product).ToDomain()

	assert.Equal(t, product.ID, restored.ID)
	assert.Equal(t, product.Name, restored.Name)
	assert.True(t, product.Price.Equal(restored.Price))
	assert.Equal(t, product.Stock, restored.Stock)
	assert.Nil(t, restored.UpdatedAt)
}

func TestNoopCache_EveryOperationIsAMiss(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, id, CachedProduct{ID: id, Name: "X"}))

	view, hit, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, hit, "a disabled cache never reports a hit")
	assert.Nil(t, view)

	require.NoError(t, c.SetAll(ctx, []CachedProduct{{ID: id}}))

	views, hit, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, views)

	require.NoError(t, c.Remove(ctx, id))
	require.NoError(t, c.RemoveAll(ctx))
}
