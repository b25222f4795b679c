// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site:
// the blog index, post creation, author pages, the faceted archive and
// the authentication pages.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// queryInt64 parses an integer query parameter, returning def when the
// parameter is absent or malformed. Negative values fall back to def too:
// facet selectors and page numbers are never negative.
func queryInt64(r *http.Request, name string, def int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// formInt64 parses an integer form value with the same fallback rules.
func formInt64(r *http.Request, name string, def int64) int64 {
	raw := r.FormValue(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// pathInt64 parses an integer chi URL parameter. Returns 0 when invalid.
func pathInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// safeNext returns the "next" redirect destination from the query if it is
// a local path, or fallback otherwise. Guards against open redirects.
func safeNext(r *http.Request, fallback string) string {
	next := r.URL.Query().Get("next")
	if next == "" || next[0] != '/' || len(next) > 1 && next[1] == '/' {
		return fallback
	}
	return next
}
