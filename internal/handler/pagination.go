// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/url"
)

// Pagination holds the older/newer navigation links for a post listing.
// Any non-page query parameters (the archive selector) are preserved.
type Pagination struct {
	Page        int64
	HasNext     bool
	HasPrev     bool
	BaseURL     string
	QueryString string
}

// BuildPagination creates pagination links for a listing page.
// baseURL is the path without query string; queryParams are the current
// parameters to preserve across page navigation.
func BuildPagination(page int64, hasNext, hasPrev bool, baseURL string, queryParams url.Values) Pagination {
	p := Pagination{
		Page:    page,
		HasNext: hasNext,
		HasPrev: hasPrev,
		BaseURL: baseURL,
	}

	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
	}

	return p
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int64) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// NextURL returns the URL for the next (older posts) page.
func (p Pagination) NextURL() string {
	return p.PageURL(p.Page + 1)
}

// PrevURL returns the URL for the previous (newer posts) page.
func (p Pagination) PrevURL() string {
	return p.PageURL(p.Page - 1)
}
