// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationStripsPageParam(t *testing.T) {
	params := url.Values{
		"page":  {"3"},
		"year":  {"2025"},
		"month": {"2"},
	}
	p := BuildPagination(3, true, true, "/blog/archive", params)

	assert.Equal(t, int64(3), p.Page)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.NotContains(t, p.QueryString, "page=")
	assert.Contains(t, p.QueryString, "year=2025")
	assert.Contains(t, p.QueryString, "month=2")
}

func TestPaginationURLs(t *testing.T) {
	p := BuildPagination(2, true, true, "/", nil)

	assert.Equal(t, "/?page=3", p.NextURL())
	assert.Equal(t, "/?page=1", p.PrevURL())
	assert.Equal(t, "/?page=7", p.PageURL(7))
}

func TestPaginationURLsPreserveSelector(t *testing.T) {
	params := url.Values{
		"year":   {"2025"},
		"month":  {"0"},
		"author": {"3"},
	}
	p := BuildPagination(1, true, false, "/blog/archive", params)

	next := p.NextURL()
	assert.Contains(t, next, "/blog/archive?")
	assert.Contains(t, next, "page=2")
	assert.Contains(t, next, "year=2025")
	// Explicit zeros survive so the URL stays a complete selection
	assert.Contains(t, next, "month=0")
	assert.Contains(t, next, "author=3")
}

func TestBuildPaginationDropsEmptyValues(t *testing.T) {
	params := url.Values{
		"q":    {""},
		"year": {"2025"},
	}
	p := BuildPagination(1, false, false, "/", params)

	assert.NotContains(t, p.QueryString, "q=")
	assert.Contains(t, p.QueryString, "year=2025")
}
