package storage

import (
	"context"
	"errors"

	"marketplace-admin-backend/internal/domain"
)

// ErrNoSession is returned by LoadSession when nothing has been saved.
var ErrNoSession = errors.New("no session stored")

// SessionStore keeps the admin session and the read-notification ids across
// process restarts. Implementations must be safe for concurrent use.
type SessionStore interface {
	// SaveSession replaces the stored token and cached profile
	SaveSession(ctx context.Context, s domain.Session) error

	// LoadSession returns ErrNoSession when nothing is stored
	LoadSession(ctx context.Context) (*domain.Session, error)

	// ClearSession removes token and profile. Read ids are kept.
	ClearSession(ctx context.Context) error

	// Token returns the stored bearer token, or "" without a session
	Token(ctx context.Context) (string, error)

	// ReadNotificationIDs returns the persisted read set
	ReadNotificationIDs(ctx context.Context) ([]string, error)

	// MarkNotificationsRead adds ids to the read set. Ids already present are ignored.
	MarkNotificationsRead(ctx context.Context, ids []string) error

	Close() error
}
