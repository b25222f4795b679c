// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	user := createTestUser(t, q, "alice")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := q.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := q.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = q.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)

	createTestUser(t, q, "alice")

	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        "alice@example.com",
		PasswordHash: "x",
		Name:         "Alice Again",
	})
	assert.Error(t, err)
}

func TestListAuthorsWithPostCounts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	q := New(db)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")
	createTestUser(t, q, "carol")

	now := time.Now().UTC()
	createTestPost(t, q, alice.ID, "a1", now)
	createTestPost(t, q, alice.ID, "a2", now.Add(time.Hour))
	createTestPost(t, q, bob.ID, "b1", now)

	authors, err := q.ListAuthors(ctx, 20)
	require.NoError(t, err)
	require.Len(t, authors, 3)

	// Authors come back in signup order, including those without posts
	assert.Equal(t, "alice", authors[0].Name)
	assert.Equal(t, int64(2), authors[0].PostCount)
	assert.Equal(t, "bob", authors[1].Name)
	assert.Equal(t, int64(1), authors[1].PostCount)
	assert.Equal(t, "carol", authors[2].Name)
	assert.Equal(t, int64(0), authors[2].PostCount)

	limited, err := q.ListAuthors(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
