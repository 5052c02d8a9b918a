package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog/cache"
)

func testView(name string) cache.CachedProduct {
	return cache.CachedProduct{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString("10.00"),
		Stock:     1,
		CreatedAt: time.Now().UTC(),
	}
}

func TestSetAndGet(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: time.Minute})
	ctx := context.Background()

	view := testView("Keyboard")
	require.NoError(t, c.Set(ctx, view.ID, view))

	got, hit, err := c.Get(ctx, view.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, view.ID, got.ID)
	assert.Equal(t, "Keyboard", got.Name)
	assert.True(t, view.Price.Equal(got.Price))
}

func TestGet_MissForUnknownID(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: time.Minute})

	got, hit, err := c.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestSet_DropsCachedList(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.SetAll(ctx, []cache.CachedProduct{testView("A"), testView("B")}))
	_, hit, err := c.GetAll(ctx)
	require.NoError(t, err)
	require.True(t, hit)

	view := testView("C")
	require.NoError(t, c.Set(ctx, view.ID, view))

	_, hit, err = c.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, hit, "a single-item write must invalidate the cached list")

	got, hit, err := c.Get(ctx, view.ID)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "C", got.Name)
}

func TestRemoveAndRemoveAll(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: time.Minute})
	ctx := context.Background()

	view := testView("Mouse")
	require.NoError(t, c.Set(ctx, view.ID, view))
	require.NoError(t, c.SetAll(ctx, []cache.CachedProduct{view}))

	require.NoError(t, c.Remove(ctx, view.ID))
	_, hit, err := c.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.RemoveAll(ctx))
	_, hit, err = c.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestAbsoluteExpiration(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: 30 * time.Millisecond})
	ctx := context.Background()

	view := testView("Ephemeral")
	require.NoError(t, c.Set(ctx, view.ID, view))

	_, hit, err := c.Get(ctx, view.ID)
	require.NoError(t, err)
	require.True(t, hit)

	time.Sleep(60 * time.Millisecond)

	_, hit, err = c.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.False(t, hit, "entries past the absolute window must read as misses")
}

func TestCancelledContextPropagates(t *testing.T) {
	c := NewProductCache(cache.Options{KeyPrefix: "test:products", Absolute: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, uuid.New(), testView("X")), context.Canceled)
}
