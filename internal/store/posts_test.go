// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/model"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "oblog-store-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, q *Queries, name string) model.User {
	t.Helper()

	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        name + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$dGVzdA$dGVzdA",
		Name:         name,
	})
	require.NoError(t, err)
	return user
}

// createTestPost inserts a post published on the given date.
func createTestPost(t *testing.T, q *Queries, authorID int64, slug string, pubDate time.Time) model.Post {
	t.Helper()

	post, err := q.CreatePost(context.Background(), CreatePostParams{
		Title:    "Post " + slug,
		Slug:     slug,
		Body:     "Body of " + slug,
		PubDate:  pubDate,
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return post
}

func TestPostFilterMatches(t *testing.T) {
	post := model.Post{PubYear: 2025, PubMonth: 3, AuthorID: 7}

	tests := []struct {
		name   string
		filter PostFilter
		want   bool
	}{
		{"zero filter matches everything", PostFilter{}, true},
		{"matching year", PostFilter{Year: 2025}, true},
		{"wrong year", PostFilter{Year: 2024}, false},
		{"matching month", PostFilter{Month: 3}, true},
		{"wrong month", PostFilter{Month: 4}, false},
		{"matching author", PostFilter{AuthorID: 7}, true},
		{"wrong author", PostFilter{AuthorID: 8}, false},
		{"all components match", PostFilter{Year: 2025, Month: 3, AuthorID: 7}, true},
		{"one component off", PostFilter{Year: 2025, Month: 4, AuthorID: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(post))
		})
	}
}

func TestPostFilterIsZero(t *testing.T) {
	assert.True(t, PostFilter{}.IsZero())
	assert.False(t, PostFilter{Year: 2025}.IsZero())
	assert.False(t, PostFilter{Month: 1}.IsZero())
	assert.False(t, PostFilter{AuthorID: 1}.IsZero())
}

func TestPostFilterWhereClause(t *testing.T) {
	where, args := PostFilter{}.whereClause()
	assert.Empty(t, where)
	assert.Nil(t, args)

	where, args = PostFilter{Year: 2025}.whereClause()
	assert.Equal(t, " WHERE p.pub_year = ?", where)
	assert.Equal(t, []any{int64(2025)}, args)

	where, args = PostFilter{Year: 2025, Month: 6, AuthorID: 3}.whereClause()
	assert.Equal(t, " WHERE p.pub_year = ? AND p.pub_month = ? AND p.author_id = ?", where)
	assert.Equal(t, []any{int64(2025), int64(6), int64(3)}, args)
}

func TestCreatePostDerivesYearAndMonth(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)

	user := createTestUser(t, q, "alice")
	pubDate := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	post := createTestPost(t, q, user.ID, "march-post", pubDate)

	assert.Equal(t, int64(2025), post.PubYear)
	assert.Equal(t, int64(3), post.PubMonth)

	got, err := q.GetPostBySlug(context.Background(), "march-post")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, int64(2025), got.PubYear)
	assert.Equal(t, int64(3), got.PubMonth)
	assert.Equal(t, "alice", got.AuthorName)
}

func TestGetPostBySlugNotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)

	_, err := q.GetPostBySlug(context.Background(), "no-such-post")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostSlugExists(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	user := createTestUser(t, q, "bob")
	now := time.Now().UTC()
	createTestPost(t, q, user.ID, "hello", now)
	createTestPost(t, q, user.ID, "hello-2", now)

	exists, err := q.PostSlugExists(ctx, "hello")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = q.PostSlugExists(ctx, "hello-2")
	require.NoError(t, err)
	assert.True(t, exists)

	// Prefix matches don't count, only the exact slug
	exists, err = q.PostSlugExists(ctx, "hell")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = q.PostSlugExists(ctx, "hello-3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListPostsOrderAndFilter(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")

	createTestPost(t, q, alice.ID, "oldest", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, bob.ID, "middle", time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, alice.ID, "newest", time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC))

	posts, err := q.ListPosts(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Slug)
	assert.Equal(t, "middle", posts[1].Slug)
	assert.Equal(t, "oldest", posts[2].Slug)

	// Every returned post satisfies the filter it was queried with
	filter := PostFilter{Year: 2025, AuthorID: alice.ID}
	posts, err = q.ListPosts(ctx, filter, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "newest", posts[0].Slug)
	for _, p := range posts {
		assert.True(t, filter.Matches(p))
	}
}

func TestListPostsPaginationWindow(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	user := createTestUser(t, q, "carol")
	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		createTestPost(t, q, user.ID, fmt.Sprintf("post-%d", i), base.Add(time.Duration(i)*time.Hour))
	}

	page1, err := q.ListPosts(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 10)

	page2, err := q.ListPosts(ctx, PostFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 3)

	page3, err := q.ListPosts(ctx, PostFilter{}, 10, 20)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestCountPosts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")
	createTestPost(t, q, alice.ID, "a1", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, alice.ID, "a2", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, bob.ID, "b1", time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))

	total, err := q.CountPosts(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byAlice, err := q.CountPosts(ctx, PostFilter{AuthorID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byAlice)

	inJune, err := q.CountPosts(ctx, PostFilter{Month: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inJune)

	none, err := q.CountPosts(ctx, PostFilter{Year: 2099})
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestDistinctFacetQueries(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")

	createTestPost(t, q, alice.ID, "p1", time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, alice.ID, "p2", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, q, bob.ID, "p3", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	years, err := q.DistinctYears(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{2024, 2025}, years)

	// Narrowed by author: only alice's years
	years, err = q.DistinctYears(ctx, PostFilter{AuthorID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{2024, 2025}, years)

	months, err := q.DistinctMonths(ctx, PostFilter{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, months)

	authors, err := q.DistinctAuthors(ctx, PostFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, bob.ID, authors[0].ID)
	assert.Equal(t, "bob", authors[0].Name)

	// No posts match: all facet sets come back empty
	years, err = q.DistinctYears(ctx, PostFilter{Year: 2099})
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestListRecentPostsByAuthor(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createTestPost(t, q, alice.ID, fmt.Sprintf("alice-%d", i), base.Add(time.Duration(i)*time.Hour))
	}
	createTestPost(t, q, bob.ID, "bob-0", base)

	recent, err := q.ListRecentPostsByAuthor(ctx, alice.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "alice-4", recent[0].Slug)
	for _, p := range recent {
		assert.Equal(t, alice.ID, p.AuthorID)
	}
}
