// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive implements the faceted archive browser: it narrows the
// post listing by publication year, publication month and author, and
// derives the remaining valid facet options for each partial selection.
package archive

import (
	"fmt"

	"github.com/olegiv/oblog-go/internal/store"
)

// Selector is the current combination of facet values driving an archive
// query. Each component is a positive integer or 0 meaning "any".
// Selectors are transient; they are never persisted.
type Selector struct {
	Year   int64 `json:"year"`
	Month  int64 `json:"month"`
	Author int64 `json:"author"`
}

// IsZero reports whether the selector is fully unconstrained.
func (s Selector) IsZero() bool {
	return s.Year == 0 && s.Month == 0 && s.Author == 0
}

// Filter translates the selector into the store's conjunctive post filter.
// Zero components are omitted, so the all-zero selector matches every post.
func (s Selector) Filter() store.PostFilter {
	return store.PostFilter{
		Year:     s.Year,
		Month:    s.Month,
		AuthorID: s.Author,
	}
}

// withoutYear returns the filter over the other two facets, used when
// resolving year options.
func (s Selector) withoutYear() store.PostFilter {
	return store.PostFilter{Month: s.Month, AuthorID: s.Author}
}

// withoutMonth returns the filter over the other two facets, used when
// resolving month options.
func (s Selector) withoutMonth() store.PostFilter {
	return store.PostFilter{Year: s.Year, AuthorID: s.Author}
}

// withoutAuthor returns the filter over the other two facets, used when
// resolving author options.
func (s Selector) withoutAuthor() store.PostFilter {
	return store.PostFilter{Year: s.Year, Month: s.Month}
}

// cacheKey identifies the facet payload for this selector.
func (s Selector) cacheKey() string {
	return fmt.Sprintf("facets:y%d:m%d:a%d", s.Year, s.Month, s.Author)
}
