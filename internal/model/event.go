// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories.
const (
	EventCategoryAuth   = "auth"
	EventCategoryPost   = "post"
	EventCategoryUser   = "user"
	EventCategorySystem = "system"
)

// Event is a single entry in the application event log. WARN and ERROR
// level slog records are mirrored here for auditing.
type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id,omitempty"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}
