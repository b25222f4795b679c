// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/oblog-go/internal/model"
)

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user and returns it with its assigned ID.
// Zero timestamps default to the current time.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	now := time.Now().UTC()
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = now
	}
	if arg.UpdatedAt.IsZero() {
		arg.UpdatedAt = now
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Email, arg.PasswordHash, arg.Name, arg.CreatedAt, arg.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("getting user id: %w", err)
	}

	return model.User{
		ID:           id,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Name:         arg.Name,
		CreatedAt:    arg.CreatedAt,
		UpdatedAt:    arg.UpdatedAt,
	}, nil
}

const userColumns = `id, email, password_hash, name, created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByEmail fetches a user by email address.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// ListAuthors returns up to limit users together with their post counts,
// ordered by signup time.
func (q *Queries) ListAuthors(ctx context.Context, limit int64) ([]model.Author, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT u.id, u.email, u.password_hash, u.name, u.created_at, u.updated_at,
		        COUNT(p.id) AS post_count
		 FROM users u
		 LEFT JOIN posts p ON p.author_id = u.id
		 GROUP BY u.id
		 ORDER BY u.id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name,
			&a.CreatedAt, &a.UpdatedAt, &a.PostCount); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
