// Package cachemanager provides a generic TTL cache used to memoize text
// object resolutions per document revision.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a generic key/value cache with per-entry TTLs.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
