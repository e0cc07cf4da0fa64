// Package gateway defines the persistence and auth collaborators the
// moderation core talks to. Implementations live in sub-packages.
package gateway

import (
	"context"

	"marketplace-admin-backend/internal/domain"
)

type UserGateway interface {
	ListAll(ctx context.Context) ([]domain.User, error)
	ListPending(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, id string) error
	Suspend(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type JobGateway interface {
	ListApproved(ctx context.Context) ([]domain.Job, error)
	ListPending(ctx context.Context) ([]domain.Job, error)
	Approve(ctx context.Context, id, collection string) error
	SetStatus(ctx context.Context, id string, status domain.JobStatus) error
	Delete(ctx context.Context, id, collection string) error
}

type BookingGateway interface {
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Approve(ctx context.Context, id, notes string) error
	Reject(ctx context.Context, id, reason string) error
	SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	Delete(ctx context.Context, id string) error
}

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

// TokenSource supplies the bearer token for outgoing calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Gateway bundles one backend's collaborators.
type Gateway struct {
	Users    UserGateway
	Jobs     JobGateway
	Bookings BookingGateway
	Auth     AuthGateway
}
