package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "summary", []byte(`[{"country":"X"}]`), time.Hour))

	b, err := mc.Get(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"country":"X"}]`), b)

	_, err = mc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Hour))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Hour))
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes least recently used.
	_, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	require.NoError(t, mc.Set(ctx, "c", []byte("3"), time.Hour))

	_, err = mc.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = mc.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestGetOrFetchFetchesOnce(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	b, cached, err := GetOrFetch(ctx, mc, Key("historical", "Italy", "all"), time.Hour, fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []byte("payload"), b)

	b, cached, err = GetOrFetch(ctx, mc, Key("historical", "Italy", "all"), time.Hour, fetch)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, []byte("payload"), b)
	assert.Equal(t, 1, calls)
}

func TestGetOrFetchDoesNotCacheErrors(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	boom := errors.New("upstream down")
	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return []byte("ok"), nil
	}

	_, _, err := GetOrFetch(ctx, mc, "k", time.Hour, fetch)
	assert.ErrorIs(t, err, boom)

	b, cached, err := GetOrFetch(ctx, mc, "k", time.Hour, fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, []byte("ok"), b)
}

func TestStatsCountsHitsAndMisses(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_, _ = mc.Get(ctx, "nope")
	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Hour))
	_, _ = mc.Get(ctx, "k")

	s := mc.Stats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 1, s.Entries)
}
