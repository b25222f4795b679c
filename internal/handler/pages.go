// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/oblog-go/internal/render"
)

// PageHandler serves the static site pages.
type PageHandler struct {
	renderer *render.Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer *render.Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// About renders the about page.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "pages/about", map[string]any{
		"Title": "About Me",
	})
}

// NotFound renders a friendly 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.renderer.Render(w, r, "pages/notfound", map[string]any{
		"Title": "Page Not Found",
	})
}
