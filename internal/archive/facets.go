// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog-go/internal/cache"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

// Option is a single selectable facet value with its display name.
// Year options carry numeric names, month and author options carry strings,
// matching the JSON payload consumed by the archive form.
type Option struct {
	Value int64 `json:"value"`
	Name  any   `json:"name"`
}

// AllOption is the sentinel prepended to every facet option list.
// Value 0 means the facet is unconstrained.
var AllOption = Option{Value: 0, Name: "All"}

// Facets holds the option sets for the three archive facets.
type Facets struct {
	Year   []Option `json:"year"`
	Month  []Option `json:"month"`
	Author []Option `json:"author"`
}

// Resolver computes facet option sets. Results are cached per selector
// because every archive page view needs all three sets.
type Resolver struct {
	queries *store.Queries
	cache   cache.Cache
	ttl     time.Duration
}

// NewResolver creates a Resolver. The cache may be nil to disable caching.
func NewResolver(q *store.Queries, c cache.Cache, ttl time.Duration) *Resolver {
	return &Resolver{queries: q, cache: c, ttl: ttl}
}

// Options returns, for each facet, the distinct remaining values among
// posts matching the *other two* selector components, with the "All"
// sentinel first. Excluding the facet's own component is what allows
// progressive narrowing: selecting a year leaves only months and authors
// that co-occur with that year.
func (r *Resolver) Options(ctx context.Context, sel Selector) (Facets, error) {
	if cached, ok := r.fromCache(ctx, sel); ok {
		return cached, nil
	}

	years, err := r.queries.DistinctYears(ctx, sel.withoutYear())
	if err != nil {
		return Facets{}, fmt.Errorf("resolving year options: %w", err)
	}

	months, err := r.queries.DistinctMonths(ctx, sel.withoutMonth())
	if err != nil {
		return Facets{}, fmt.Errorf("resolving month options: %w", err)
	}

	authors, err := r.queries.DistinctAuthors(ctx, sel.withoutAuthor())
	if err != nil {
		return Facets{}, fmt.Errorf("resolving author options: %w", err)
	}

	facets := Facets{
		Year:   make([]Option, 0, len(years)+1),
		Month:  make([]Option, 0, len(months)+1),
		Author: make([]Option, 0, len(authors)+1),
	}

	facets.Year = append(facets.Year, AllOption)
	for _, y := range years {
		facets.Year = append(facets.Year, Option{Value: y, Name: y})
	}

	facets.Month = append(facets.Month, AllOption)
	for _, m := range months {
		facets.Month = append(facets.Month, Option{Value: m, Name: model.MonthName(m)})
	}

	facets.Author = append(facets.Author, AllOption)
	for _, a := range authors {
		facets.Author = append(facets.Author, Option{Value: a.ID, Name: a.Name})
	}

	r.toCache(ctx, sel, facets)

	return facets, nil
}

// Invalidate drops all cached facet payloads. Called when a post is created.
func (r *Resolver) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Clear(ctx); err != nil {
		slog.Warn("failed to invalidate facet cache", "error", err)
	}
}

func (r *Resolver) fromCache(ctx context.Context, sel Selector) (Facets, bool) {
	if r.cache == nil {
		return Facets{}, false
	}

	data, err := r.cache.Get(ctx, sel.cacheKey())
	if err != nil {
		return Facets{}, false
	}

	var facets Facets
	if err := json.Unmarshal(data, &facets); err != nil {
		slog.Warn("corrupt facet cache entry", "key", sel.cacheKey(), "error", err)
		_ = r.cache.Delete(ctx, sel.cacheKey())
		return Facets{}, false
	}
	return facets, true
}

func (r *Resolver) toCache(ctx context.Context, sel Selector, facets Facets) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(facets)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, sel.cacheKey(), data, r.ttl); err != nil {
		slog.Warn("failed to cache facet options", "key", sel.cacheKey(), "error", err)
	}
}
