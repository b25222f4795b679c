// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/oblog-go/internal/model"
)

// PostFilter narrows post queries by publication year, publication month
// and author. A zero component means "any". The zero value matches all posts.
type PostFilter struct {
	Year     int64
	Month    int64
	AuthorID int64
}

// IsZero reports whether the filter is unconstrained.
func (f PostFilter) IsZero() bool {
	return f.Year == 0 && f.Month == 0 && f.AuthorID == 0
}

// conditions returns the conjunctive WHERE fragments and their arguments,
// omitting any component equal to zero. Column references are qualified
// with the posts table alias "p".
func (f PostFilter) conditions() ([]string, []any) {
	var conds []string
	var args []any
	if f.Year != 0 {
		conds = append(conds, "p.pub_year = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		conds = append(conds, "p.pub_month = ?")
		args = append(args, f.Month)
	}
	if f.AuthorID != 0 {
		conds = append(conds, "p.author_id = ?")
		args = append(args, f.AuthorID)
	}
	return conds, args
}

// whereClause renders the filter as a WHERE clause, or an empty string for
// the unconstrained filter.
func (f PostFilter) whereClause() (string, []any) {
	conds, args := f.conditions()
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Matches reports whether a post satisfies the filter. This is the same
// predicate the SQL clause expresses, evaluated in memory.
func (f PostFilter) Matches(p model.Post) bool {
	if f.Year != 0 && p.PubYear != f.Year {
		return false
	}
	if f.Month != 0 && p.PubMonth != f.Month {
		return false
	}
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// CreatePostParams holds the fields for creating a post. PubYear and
// PubMonth are derived from PubDate at insert time.
type CreatePostParams struct {
	Title    string
	Slug     string
	Body     string
	PubDate  time.Time
	AuthorID int64
}

// CreatePost inserts a new post and returns it with its assigned ID.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	pubYear := int64(arg.PubDate.Year())
	pubMonth := int64(arg.PubDate.Month())

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (title, slug, body, pub_date, pub_year, pub_month, author_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Body, arg.PubDate, pubYear, pubMonth, arg.AuthorID,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("inserting post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, fmt.Errorf("getting post id: %w", err)
	}

	return model.Post{
		ID:       id,
		Title:    arg.Title,
		Slug:     arg.Slug,
		Body:     arg.Body,
		PubDate:  arg.PubDate,
		PubYear:  pubYear,
		PubMonth: pubMonth,
		AuthorID: arg.AuthorID,
	}, nil
}

const postColumns = `p.id, p.title, p.slug, p.body, p.pub_date, p.pub_year, p.pub_month, p.author_id, u.name`

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.PubDate,
			&p.PubYear, &p.PubMonth, &p.AuthorID, &p.AuthorName); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostBySlug fetches a single post by its URL slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	var p model.Post
	err := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.slug = ?`, slug,
	).Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.PubDate,
		&p.PubYear, &p.PubMonth, &p.AuthorID, &p.AuthorName)
	return p, err
}

// PostSlugExists reports whether a post with the given slug exists.
// Used for slug deduplication.
func (q *Queries) PostSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE slug = ?`, slug,
	).Scan(&n)
	return n > 0, err
}

// ListPosts returns a slice of posts matching the filter, newest first,
// with author names resolved.
func (q *Queries) ListPosts(ctx context.Context, f PostFilter, limit, offset int64) ([]model.Post, error) {
	where, args := f.whereClause()
	args = append(args, limit, offset)

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p JOIN users u ON u.id = p.author_id`+where+`
		 ORDER BY p.pub_date DESC, p.id DESC
		 LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanPosts(rows)
}

// CountPosts returns the number of posts matching the filter.
func (q *Queries) CountPosts(ctx context.Context, f PostFilter) (int64, error) {
	where, args := f.whereClause()
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p`+where, args...).Scan(&n)
	return n, err
}

// ListRecentPostsByAuthor returns the author's latest posts, newest first.
func (q *Queries) ListRecentPostsByAuthor(ctx context.Context, authorID, limit int64) ([]model.Post, error) {
	return q.ListPosts(ctx, PostFilter{AuthorID: authorID}, limit, 0)
}

// DistinctYears returns the distinct publication years among posts matching
// the filter, ascending.
func (q *Queries) DistinctYears(ctx context.Context, f PostFilter) ([]int64, error) {
	return q.distinctInts(ctx, "pub_year", f)
}

// DistinctMonths returns the distinct publication months among posts
// matching the filter, ascending.
func (q *Queries) DistinctMonths(ctx context.Context, f PostFilter) ([]int64, error) {
	return q.distinctInts(ctx, "pub_month", f)
}

func (q *Queries) distinctInts(ctx context.Context, column string, f PostFilter) ([]int64, error) {
	where, args := f.whereClause()
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT p.`+column+` FROM posts p`+where+` ORDER BY p.`+column, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting distinct %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var values []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// AuthorFacet is a distinct author among a filtered set of posts.
type AuthorFacet struct {
	ID   int64
	Name string
}

// DistinctAuthors returns the distinct authors among posts matching the
// filter, with display names resolved, ordered by author id. Authors with
// no matching posts do not appear.
func (q *Queries) DistinctAuthors(ctx context.Context, f PostFilter) ([]AuthorFacet, error) {
	where, args := f.whereClause()
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT p.author_id, u.name
		 FROM posts p JOIN users u ON u.id = p.author_id`+where+`
		 ORDER BY p.author_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting distinct authors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var authors []AuthorFacet
	for rows.Next() {
		var a AuthorFacet
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning author facet: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
