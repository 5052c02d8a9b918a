package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/catalog/cache"
)

// envelope wraps the cached value with its absolute deadline so the sliding
// refresh can never push an entry past the absolute expiration window.
type envelope struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Value     json.RawMessage `json:"value"`
}

// Client is the subset of redis commands the cache issues. *redis.Client
// satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type redisProductCache struct {
	client Client
	opts   cache.Options
	logger *zap.Logger
}

// NewProductCache builds the distributed cache backend on top of a Redis
// client. Entries are stored as JSON envelopes under {prefix}:{id} and the
// full list under {prefix}:all.
func NewProductCache(client Client, opts cache.Options, l *zap.Logger) cache.ProductCache {
	return &redisProductCache{client: client, opts: opts, logger: l}
}

func (c *redisProductCache) Get(ctx context.Context, id uuid.UUID) (*cache.CachedProduct, bool, error) {
	raw, ok, err := c.get(ctx, c.opts.ItemKey(id))
	if err != nil || !ok {
		return nil, false, err
	}
	var view cache.CachedProduct
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &view, true, nil
}

func (c *redisProductCache) GetAll(ctx context.Context) ([]cache.CachedProduct, bool, error) {
	raw, ok, err := c.get(ctx, c.opts.ListKey())
	if err != nil || !ok {
		return nil, false, err
	}
	var views []cache.CachedProduct
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached product list: %w", err)
	}
	return views, true, nil
}

func (c *redisProductCache) Set(ctx context.Context, id uuid.UUID, view cache.CachedProduct) error {
	if err := c.set(ctx, c.opts.ItemKey(id), view); err != nil {
		return err
	}
	// A single-item write makes a previously cached full list stale.
	return c.RemoveAll(ctx)
}

func (c *redisProductCache) SetAll(ctx context.Context, views []cache.CachedProduct) error {
	return c.set(ctx, c.opts.ListKey(), views)
}

func (c *redisProductCache) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.opts.ItemKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to remove cached product: %w", err)
	}
	return nil
}

func (c *redisProductCache) RemoveAll(ctx context.Context) error {
	if err := c.client.Del(ctx, c.opts.ListKey()).Err(); err != nil {
		return fmt.Errorf("failed to remove cached product list: %w", err)
	}
	return nil
}

func (c *redisProductCache) get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache envelope for key %s: %w", key, err)
	}

	now := time.Now().UTC()
	if now.After(env.ExpiresAt) {
		// The absolute deadline passed while a sliding refresh kept the
		// key alive. Drop it and report a miss.
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("Failed to drop expired cache entry", zap.String("key", key), zap.Error(err))
		}
		return nil, false, nil
	}

	if c.opts.Sliding > 0 {
		ttl := c.opts.Sliding
		if remaining := env.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			c.logger.Warn("Failed to refresh sliding expiration", zap.String("key", key), zap.Error(err))
		}
	}

	return env.Value, true, nil
}

func (c *redisProductCache) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for key %s: %w", key, err)
	}

	now := time.Now().UTC()
	env := envelope{ExpiresAt: now.Add(c.opts.Absolute), Value: raw}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode cache envelope for key %s: %w", key, err)
	}

	ttl := c.opts.Absolute
	if c.opts.Sliding > 0 && c.opts.Sliding < ttl {
		ttl = c.opts.Sliding
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}
