// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryInt64(t *testing.T) {
	tests := []struct {
		name string
		url  string
		def  int64
		want int64
	}{
		{"absent", "/?other=1", 1, 1},
		{"valid", "/?page=5", 1, 5},
		{"zero", "/?page=0", 1, 0},
		{"malformed", "/?page=abc", 1, 1},
		{"negative", "/?page=-2", 1, 1},
		{"empty", "/?page=", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, queryInt64(req, "page", tt.def))
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"absent", "/login", "/"},
		{"local path", "/login?next=/blog/create", "/blog/create"},
		{"protocol-relative", "/login?next=//evil.example", "/"},
		{"absolute url", "/login?next=https://evil.example", "/"},
		{"root", "/login?next=/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, safeNext(req, "/"))
		})
	}
}

func TestSelectorValues(t *testing.T) {
	req := httptest.NewRequest("GET", "/blog/archive?year=2025&month=0&author=3", nil)
	sel := selectorFromQuery(req)

	assert.Equal(t, int64(2025), sel.Year)
	assert.Equal(t, int64(0), sel.Month)
	assert.Equal(t, int64(3), sel.Author)

	values := selectorValues(sel)
	assert.Equal(t, "2025", values.Get("year"))
	assert.Equal(t, "0", values.Get("month"))
	assert.Equal(t, "3", values.Get("author"))
}
