// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"fmt"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

// PostsPerPage is the fixed page size for all post listings.
const PostsPerPage = 10

// Mode distinguishes the two archive view states.
type Mode string

const (
	// ModeSelection means the user is still picking facets; the view
	// carries the option sets for all three facets.
	ModeSelection Mode = "selection"

	// ModeListing means a concrete selection (or explicit page request)
	// resolved to a paginated post listing.
	ModeListing Mode = "listing"
)

// View is the result of an archive request: either the facet option sets
// (selection mode) or a page of matching posts (listing mode).
type View struct {
	Mode     Mode
	Selector Selector

	// Facets is set in selection mode.
	Facets *Facets

	// Listing fields, set in listing mode.
	Posts   []model.Post
	Page    int64
	HasNext bool
	HasPrev bool
}

// Service composes the filter builder and facet resolver into the two
// read-only operations the web layer consumes.
type Service struct {
	queries  *store.Queries
	resolver *Resolver
}

// NewService creates an archive Service around the given query layer.
func NewService(q *store.Queries, resolver *Resolver) *Service {
	return &Service{queries: q, resolver: resolver}
}

// Resolver exposes the facet resolver, for the JSON options endpoint and
// for cache invalidation on post creation.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// ArchiveView returns the archive view for a selector. The view is in
// listing mode when the request carried a complete facet submission or an
// explicit page number; otherwise it is in selection mode with the option
// sets computed against the current partial selection.
//
// A selector naming a nonexistent author is not an error: its predicate
// simply matches no posts and the listing comes back empty.
func (s *Service) ArchiveView(ctx context.Context, sel Selector, page int64, listing bool) (*View, error) {
	if !listing {
		facets, err := s.resolver.Options(ctx, sel)
		if err != nil {
			return nil, err
		}
		return &View{
			Mode:     ModeSelection,
			Selector: sel,
			Facets:   &facets,
		}, nil
	}

	posts, hasNext, err := s.listPage(ctx, sel.Filter(), page)
	if err != nil {
		return nil, err
	}

	return &View{
		Mode:     ModeListing,
		Selector: sel,
		Posts:    posts,
		Page:     page,
		HasNext:  hasNext,
		HasPrev:  page > 1,
	}, nil
}

// PostPage returns one page of the unfiltered post listing, newest first.
// Used by the blog index.
func (s *Service) PostPage(ctx context.Context, page int64) (*View, error) {
	posts, hasNext, err := s.listPage(ctx, store.PostFilter{}, page)
	if err != nil {
		return nil, err
	}

	return &View{
		Mode:    ModeListing,
		Posts:   posts,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1,
	}, nil
}

// listPage fetches one page of filtered posts. It asks for one row beyond
// the page size: that extra row's existence is exactly "has next page".
func (s *Service) listPage(ctx context.Context, f store.PostFilter, page int64) ([]model.Post, bool, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * PostsPerPage
	posts, err := s.queries.ListPosts(ctx, f, PostsPerPage+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("listing archive page %d: %w", page, err)
	}

	hasNext := int64(len(posts)) > PostsPerPage
	if hasNext {
		posts = posts[:PostsPerPage]
	}
	return posts, hasNext, nil
}
