// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route paths shared across handlers.
const (
	RouteRoot    = "/"
	RouteCreate  = "/blog/create"
	RouteArchive = "/blog/archive"
	RouteAuthors = "/blog/authors"
	RouteLogin   = "/auth/login"
	RouteSignup  = "/auth/signup"
)

// Listing limits outside the paginated post listings.
const (
	// authorsListLimit caps the authors index.
	authorsListLimit = 20
	// recentPostsLimit is how many recent posts an author page shows.
	recentPostsLimit = 3
)
