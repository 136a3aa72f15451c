package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type localCache struct {
	store *gocache.Cache
}

// NewLocalCache returns an in-process cache for deployments without Redis.
// Values are stored JSON-encoded so both implementations behave identically.
func NewLocalCache(defaultTTL time.Duration) Service {
	return &localCache{
		store: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *localCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.store.Get(key)
	if !found {
		return false, nil
	}

	data, ok := val.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cache value type for key %s", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (c *localCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	c.store.Set(key, data, ttl)
	return nil
}

func (c *localCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.store.Delete(key)
	}
	return nil
}

func (c *localCache) Close() error { return nil }
