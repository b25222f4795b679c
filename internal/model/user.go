// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types used throughout the application:
// User, Post and Event.
package model

import "time"

// User represents a blog author account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Author is a user together with the number of posts they have published.
// Used by the authors listing.
type Author struct {
	User
	PostCount int64 `json:"post_count"`
}
