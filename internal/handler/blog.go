// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/archive"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/util"
)

// BlogHandler serves the post index, single posts and the creation form.
type BlogHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	service  *archive.Service
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer, service *archive.Service) *BlogHandler {
	return &BlogHandler{
		queries:  store.New(db),
		renderer: renderer,
		service:  service,
	}
}

// Index renders the paginated post listing, newest first.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt64(r, "page", 1)
	if page < 1 {
		page = 1
	}

	view, err := h.service.PostPage(r.Context(), page)
	if err != nil {
		logAndInternalError(w, "failed to load post page", "error", err, "page", page)
		return
	}

	h.renderer.Render(w, r, "blog/index", map[string]any{
		"Title":      "Blog",
		"Posts":      view.Posts,
		"Pagination": BuildPagination(view.Page, view.HasNext, view.HasPrev, RouteRoot, r.URL.Query()),
	})
}

// Show renders a single post by slug.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, RouteRoot, "Can't find that post.")
			return
		}
		logAndInternalError(w, "failed to load post", "error", err, "slug", slug)
		return
	}

	h.renderer.Render(w, r, "blog/show", map[string]any{
		"Title": post.Title,
		"Post":  post,
	})
}

// CreateForm renders the post creation form.
func (h *BlogHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "blog/create", map[string]any{
		"Title": "Create a Post",
		"Form":  PostForm{},
	})
}

// Create handles the post creation form submission. Invalid input
// re-renders the form with field messages and nothing is persisted.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, middleware.RouteLogin, http.StatusSeeOther)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, RouteCreate) {
		return
	}

	form := DecodePostForm(r)
	if errs := form.Validate(); !errs.Valid() {
		h.renderer.Render(w, r, "blog/create", map[string]any{
			"Title":  "Create a Post",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	slug, err := h.uniqueSlug(r, form.Title)
	if err != nil {
		logAndInternalError(w, "failed to generate post slug", "error", err)
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:    form.Title,
		Slug:     slug,
		Body:     form.Body,
		PubDate:  time.Now().UTC(),
		AuthorID: user.ID,
	})
	if err != nil {
		logAndInternalError(w, "failed to create post", "error", err, "author_id", user.ID)
		return
	}

	// New posts change the available facet combinations
	h.service.Resolver().Invalidate(r.Context())

	slog.Info("post created",
		"category", model.EventCategoryPost,
		"post_id", post.ID,
		"author_id", user.ID,
	)
	flashSuccess(w, r, h.renderer, RouteRoot, "Post created successfully.")
}

// uniqueSlug slugifies a title and appends a numeric suffix when the slug
// is already taken, incrementing until a free candidate is found.
func (h *BlogHandler) uniqueSlug(r *http.Request, title string) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		slug = "post"
	}

	candidate := slug
	for n := int64(2); ; n++ {
		exists, err := h.queries.PostSlugExists(r.Context(), candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
}
