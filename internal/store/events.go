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

// CreateEventParams holds the fields for creating an event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, user_id, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt,
	)
	if err != nil {
		return model.Event{}, fmt.Errorf("inserting event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, fmt.Errorf("getting event id: %w", err)
	}

	return model.Event{
		ID:        id,
		Level:     arg.Level,
		Category:  arg.Category,
		Message:   arg.Message,
		UserID:    arg.UserID,
		Metadata:  arg.Metadata,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// ListRecentEvents returns the newest events up to limit.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, level, category, message, user_id, metadata, created_at
		 FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
