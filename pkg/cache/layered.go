package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache implements a two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache:   NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	// L1: Try memory first
	if b, err := lc.memCache.Get(ctx, key); err == nil {
		return b, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	// L2: Try Redis
	b, err := lc.redisCache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Store in memory for next time; TTL unknown here, expire with Redis.
	_ = lc.memCache.Set(ctx, key, b, 0)
	return b, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, err := lc.memCache.Exists(ctx, key); err == nil && ok {
		return true, nil
	}
	return lc.redisCache.Exists(ctx, key)
}

func (lc *LayeredCache) Stats() Stats {
	mem := lc.memCache.Stats()
	rds := lc.redisCache.Stats()
	return Stats{
		Hits:    mem.Hits + rds.Hits,
		Misses:  rds.Misses,
		Entries: rds.Entries,
	}
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
