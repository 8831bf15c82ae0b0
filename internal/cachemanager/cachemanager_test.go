package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	c.Set(ctx, "k", 42, time.Minute)

	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestInMemoryCacheManager_MissingKey(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get(context.Background(), "absent")

	assert.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	c.Set(ctx, "a", "1", time.Minute)
	c.Set(ctx, "b", "2", time.Minute)

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, c.Flush(ctx))
	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestInMemoryCacheManager_Expiration(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	c.Set(ctx, "k", 1, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestReadThroughCache_LoadsOnceAndCaches(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rt := NewReadThroughCache[string, int, int](c, func(_ context.Context, input int) (int, error) {
		calls++
		return input * 2, nil
	}, false)
	ctx := context.Background()

	v, err := rt.Get(ctx, "k", 21, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = rt.Get(ctx, "k", 21, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rt := NewReadThroughCache[string, int, int](c, func(_ context.Context, input int) (int, error) {
		calls++
		return input, nil
	}, true)
	ctx := context.Background()

	_, _ = rt.Get(ctx, "k", 1, time.Minute)
	_, _ = rt.Get(ctx, "k", 1, time.Minute)

	assert.Equal(t, 2, calls)
}

func TestReadThroughCache_ErrorsNotCached(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	boom := errors.New("boom")
	calls := 0
	rt := NewReadThroughCache[string, int, int](c, func(_ context.Context, _ int) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}, false)
	ctx := context.Background()

	_, err := rt.Get(ctx, "k", 0, time.Minute)
	assert.ErrorIs(t, err, boom)

	v, err := rt.Get(ctx, "k", 0, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
