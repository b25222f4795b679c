// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/testutil"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	seedArchiveFixture(t, db)

	q := store.New(db)
	return NewService(q, NewResolver(q, nil, 0)), cleanup
}

func TestPostPagePagination(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// 13 posts: page 1 is full with a next page, no previous page
	page1, err := svc.PostPage(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, PostsPerPage)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	assert.Equal(t, int64(1), page1.Page)

	// Page 2 holds the remaining 3 posts
	page2, err := svc.PostPage(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 3)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)

	// Past the end: empty page, still navigable backwards
	page3, err := svc.PostPage(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, page3.Posts)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrev)
}

func TestPostPageNewestFirst(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	page, err := svc.PostPage(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Posts)

	for i := 1; i < len(page.Posts); i++ {
		prev, cur := page.Posts[i-1], page.Posts[i]
		assert.False(t, prev.PubDate.Before(cur.PubDate),
			"posts must be ordered newest first")
	}
}

func TestPostPageClampsPageNumber(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	page, err := svc.PostPage(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, page.Posts, PostsPerPage)
}

func TestArchiveViewSelectionMode(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	view, err := svc.ArchiveView(context.Background(), Selector{}, 0, false)
	require.NoError(t, err)

	assert.Equal(t, ModeSelection, view.Mode)
	require.NotNil(t, view.Facets)
	assert.Equal(t, AllOption, view.Facets.Year[0])
	assert.Empty(t, view.Posts)
}

func TestArchiveViewListingMode(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// February has 5 posts, all by the same author
	view, err := svc.ArchiveView(ctx, Selector{Year: 2025, Month: 2}, 1, true)
	require.NoError(t, err)

	assert.Equal(t, ModeListing, view.Mode)
	assert.Len(t, view.Posts, 5)
	assert.False(t, view.HasNext)
	assert.False(t, view.HasPrev)
	for _, p := range view.Posts {
		assert.Equal(t, int64(2025), p.PubYear)
		assert.Equal(t, int64(2), p.PubMonth)
	}

	// The all-zero selector lists everything, paginated
	view, err = svc.ArchiveView(ctx, Selector{}, 1, true)
	require.NoError(t, err)
	assert.Len(t, view.Posts, PostsPerPage)
	assert.True(t, view.HasNext)
}

func TestArchiveViewEmptyListing(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	// A year with no posts is not an error, just an empty listing
	view, err := svc.ArchiveView(context.Background(), Selector{Year: 2099}, 1, true)
	require.NoError(t, err)

	assert.Equal(t, ModeListing, view.Mode)
	assert.Empty(t, view.Posts)
	assert.False(t, view.HasNext)
	assert.False(t, view.HasPrev)
}

func TestArchiveViewNonexistentAuthor(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	view, err := svc.ArchiveView(context.Background(), Selector{Author: 9999}, 1, true)
	require.NoError(t, err)
	assert.Empty(t, view.Posts)
}
