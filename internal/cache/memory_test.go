// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts MemoryCacheOptions) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(opts)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute})

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheMaxSizeEviction(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 3})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0))
	}

	assert.LessOrEqual(t, c.Len(), 3)
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := newTestCache(t, MemoryCacheOptions{DefaultTTL: time.Minute})
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, c.Set(ctx, "k", original, 0))
	original[0] = 'X'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), got)

	// Mutating the returned slice must not corrupt the stored value
	got[0] = 'Y'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	require.NoError(t, c.Close())

	err := c.Set(context.Background(), "k", []byte("v"), 0)
	assert.ErrorIs(t, err, ErrCacheClosed)

	_, err = c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
}

func TestNewCacheFactoryDefaultsToMemory(t *testing.T) {
	c, err := NewCache(DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}

func TestNewCacheFallsBackWhenRedisUnavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = "redis"
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	cfg.FallbackToMemory = true

	c, err := NewCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}
