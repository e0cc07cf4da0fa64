// Package audit records successful moderation actions.
package audit

import (
	"context"
	"time"

	"marketplace-admin-backend/internal/domain"
)

// Entry is one moderation action taken by an admin.
type Entry struct {
	ID         string            `json:"id"`
	Actor      string            `json:"actor"`
	EntityType domain.EntityKind `json:"entityType"`
	EntityID   string            `json:"entityId"`
	Action     string            `json:"action"`
	Detail     string            `json:"detail,omitempty"`
	At         time.Time         `json:"at"`
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
	// List returns the newest entries first
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Noop discards entries. It is used when the audit database is disabled.
type Noop struct{}

func (Noop) Record(context.Context, Entry) error { return nil }

func (Noop) List(context.Context, int) ([]Entry, error) { return []Entry{}, nil }
