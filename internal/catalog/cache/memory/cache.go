package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/viccon/sturdyc"

	"storefront/internal/catalog/cache"
)

const (
	capacity           = 10000
	numShards          = 64
	evictionPercentage = 10
)

// memProductCache is the in-process fallback backend, built on a sharded
// sturdyc client. Entries honor the absolute expiration window; sliding
// refresh is not supported by this backend and the option is ignored.
type memProductCache struct {
	client *sturdyc.Client[[]byte]
	opts   cache.Options
}

func NewProductCache(opts cache.Options) cache.ProductCache {
	return &memProductCache{
		client: sturdyc.New[[]byte](capacity, numShards, opts.Absolute, evictionPercentage),
		opts:   opts,
	}
}

func (c *memProductCache) Get(ctx context.Context, id uuid.UUID) (*cache.CachedProduct, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, ok := c.client.Get(c.opts.ItemKey(id))
	if !ok {
		return nil, false, nil
	}
	var view cache.CachedProduct
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &view, true, nil
}

func (c *memProductCache) GetAll(ctx context.Context) ([]cache.CachedProduct, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, ok := c.client.Get(c.opts.ListKey())
	if !ok {
		return nil, false, nil
	}
	var views []cache.CachedProduct
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached product list: %w", err)
	}
	return views, true, nil
}

func (c *memProductCache) Set(ctx context.Context, id uuid.UUID, view cache.CachedProduct) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode cached product: %w", err)
	}
	c.client.Set(c.opts.ItemKey(id), raw)
	// A single-item write makes a previously cached full list stale.
	c.client.Delete(c.opts.ListKey())
	return nil
}

func (c *memProductCache) SetAll(ctx context.Context, views []cache.CachedProduct) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("failed to encode cached product list: %w", err)
	}
	c.client.Set(c.opts.ListKey(), raw)
	return nil
}

func (c *memProductCache) Remove(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.client.Delete(c.opts.ItemKey(id))
	return nil
}

func (c *memProductCache) RemoveAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.client.Delete(c.opts.ListKey())
	return nil
}
