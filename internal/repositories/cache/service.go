// Package cache provides a small key-value cache abstraction with a Redis
// implementation for shared deployments and an in-process implementation for
// single-node ones.
package cache

import (
	"context"
	"time"
)

// Service is the cache contract consumed by the read path. Get reports
// whether the key was present; a miss is not an error.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
