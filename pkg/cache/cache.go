package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service is a byte-oriented key-value cache with per-entry expiry. Values
// are stored as raw bytes so the same contract works for the in-process map
// and for Redis.
type Service interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Stats() Stats
	Close() error
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// GetOrFetch returns the cached value for key, or calls fetch, stores the
// result for ttl, and returns it. The bool result reports whether the value
// came from the cache. Fetch errors are returned as-is and nothing is stored.
func GetOrFetch(ctx context.Context, c Service, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if b, err := c.Get(ctx, key); err == nil {
		return b, true, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		// A broken cache backend must not take the data path down.
		b, ferr := fetch(ctx)
		return b, false, ferr
	}

	b, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, b, ttl); err != nil {
		return b, false, nil
	}
	return b, false, nil
}
