// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Post represents a published blog post. Posts are immutable once created.
type Post struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Body     string    `json:"body"`
	PubDate  time.Time `json:"pub_date"`
	PubYear  int64     `json:"pub_year"`
	PubMonth int64     `json:"pub_month"`
	AuthorID int64     `json:"author_id"`

	// AuthorName is populated by queries that join the users table.
	AuthorName string `json:"author_name,omitempty"`
}

// MonthName maps a month number (1-12) to its English display name.
// Returns an empty string for out-of-range values.
func MonthName(m int64) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}
