// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// Type is the cache backend type: "memory" or "redis".
	Type string

	// RedisURL is the Redis connection URL (only for redis type).
	RedisURL string

	// Prefix is the key prefix for Redis (only for redis type).
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited).
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup.
	CleanupInterval time.Duration

	// FallbackToMemory falls back to the memory backend when Redis is unavailable.
	FallbackToMemory bool
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		DefaultTTL:      5 * time.Minute,
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	}
}

// NewCache creates a cache based on the provided configuration.
func NewCache(cfg Config) (Cache, error) {
	if cfg.Type == "redis" && cfg.RedisURL != "" {
		c, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			return c, nil
		}
		if !cfg.FallbackToMemory {
			return nil, err
		}
		slog.Warn("redis cache unavailable, falling back to memory", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), nil
}
