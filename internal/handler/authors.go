// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/store"
)

// AuthorHandler serves the author index and individual author pages.
type AuthorHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(db *sql.DB, renderer *render.Renderer) *AuthorHandler {
	return &AuthorHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// List renders the registered authors with their post counts.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.queries.ListAuthors(r.Context(), authorsListLimit)
	if err != nil {
		logAndInternalError(w, "failed to list authors", "error", err)
		return
	}

	h.renderer.Render(w, r, "blog/authors", map[string]any{
		"Title":   "Authors",
		"Authors": authors,
	})
}

// Show renders a single author profile with their most recent posts.
func (h *AuthorHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := pathInt64(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, RouteAuthors, "Can't find that author.")
		return
	}

	author, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteAuthors, "Can't find that author.")
			return
		}
		logAndInternalError(w, "failed to load author", "error", err, "author_id", id)
		return
	}

	postCount, err := h.queries.CountPosts(r.Context(), store.PostFilter{AuthorID: id})
	if err != nil {
		logAndInternalError(w, "failed to count author posts", "error", err, "author_id", id)
		return
	}

	recent, err := h.queries.ListRecentPostsByAuthor(r.Context(), id, recentPostsLimit)
	if err != nil {
		logAndInternalError(w, "failed to load recent posts", "error", err, "author_id", id)
		return
	}

	h.renderer.Render(w, r, "blog/author", map[string]any{
		"Title":       author.Name,
		"Author":      author,
		"PostCount":   postCount,
		"RecentPosts": recent,
	})
}
