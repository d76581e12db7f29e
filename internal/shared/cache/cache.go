// Package cache provides the key/value cache used by read-side projections.
package cache

import (
	"context"
	"time"
)

// Cache is the caching interface. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Incr atomically increments a persistent counter and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}
