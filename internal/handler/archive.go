// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/oblog-go/internal/archive"
	"github.com/olegiv/oblog-go/internal/render"
)

// ArchiveHandler serves the faceted archive browser: the selection page
// with year/month/author dropdowns, the filtered post listing and the
// JSON options endpoint backing the dropdown refresh.
type ArchiveHandler struct {
	renderer *render.Renderer
	service  *archive.Service
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(renderer *render.Renderer, service *archive.Service) *ArchiveHandler {
	return &ArchiveHandler{
		renderer: renderer,
		service:  service,
	}
}

// View renders the archive. A GET with a partial (or empty) selection
// shows the facet dropdowns; a form submission, a complete selection or
// an explicit page number shows the matching post listing.
func (h *ArchiveHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if !parseFormOrRedirect(w, r, h.renderer, RouteArchive) {
			return
		}
		sel := archive.Selector{
			Year:   formInt64(r, "year", 0),
			Month:  formInt64(r, "month", 0),
			Author: formInt64(r, "author", 0),
		}
		h.renderListing(w, r, sel, 1)
		return
	}

	sel := selectorFromQuery(r)
	page := queryInt64(r, "page", 0)

	q := r.URL.Query()
	complete := q.Has("year") && q.Has("month") && q.Has("author")
	if page > 0 || complete {
		if page < 1 {
			page = 1
		}
		h.renderListing(w, r, sel, page)
		return
	}

	view, err := h.service.ArchiveView(r.Context(), sel, 0, false)
	if err != nil {
		logAndInternalError(w, "failed to resolve archive options", "error", err)
		return
	}

	h.renderer.Render(w, r, "blog/archive", map[string]any{
		"Title":    "Archive",
		"Mode":     view.Mode,
		"Selector": view.Selector,
		"Facets":   view.Facets,
	})
}

// Options returns the facet option sets for the given selection as JSON.
// Each facet lists the values still valid against the other two selections,
// with the 0 "All" sentinel first.
func (h *ArchiveHandler) Options(w http.ResponseWriter, r *http.Request) {
	sel := selectorFromQuery(r)

	facets, err := h.service.Resolver().Options(r.Context(), sel)
	if err != nil {
		slog.Error("failed to resolve archive options", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, facets)
}

// renderListing renders one page of the filtered post listing. The
// selector rides along in the pagination query string so older/newer
// links keep the selection.
func (h *ArchiveHandler) renderListing(w http.ResponseWriter, r *http.Request, sel archive.Selector, page int64) {
	view, err := h.service.ArchiveView(r.Context(), sel, page, true)
	if err != nil {
		logAndInternalError(w, "failed to load archive listing", "error", err)
		return
	}

	h.renderer.Render(w, r, "blog/archive", map[string]any{
		"Title":      "Archive",
		"Mode":       view.Mode,
		"Selector":   view.Selector,
		"Posts":      view.Posts,
		"Pagination": BuildPagination(view.Page, view.HasNext, view.HasPrev, RouteArchive, selectorValues(sel)),
	})
}

// selectorValues encodes a selector as query parameters, so pagination
// links can reproduce the selection. Explicit zeros are kept: a URL with
// all three parameters stays in listing mode.
func selectorValues(sel archive.Selector) url.Values {
	return url.Values{
		"year":   {strconv.FormatInt(sel.Year, 10)},
		"month":  {strconv.FormatInt(sel.Month, 10)},
		"author": {strconv.FormatInt(sel.Author, 10)},
	}
}

// selectorFromQuery decodes a facet selector from query parameters.
// Absent, malformed or negative values mean "any".
func selectorFromQuery(r *http.Request) archive.Selector {
	return archive.Selector{
		Year:   queryInt64(r, "year", 0),
		Month:  queryInt64(r, "month", 0),
		Author: queryInt64(r, "author", 0),
	}
}
