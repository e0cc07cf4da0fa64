package service

import (
	"context"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
)

// Confirm is the human-in-the-loop gate for destructive actions. It returns
// true only when the operator explicitly agreed to prompt.
type Confirm func(prompt string) bool

// Confirmed is a gate that always agrees. It is meant for callers that have
// already collected the operator's answer.
func Confirmed(string) bool { return true }

type ModerationService interface {
	ApproveUser(ctx context.Context, id string) (*domain.User, error)
	RejectUser(ctx context.Context, id string, confirm Confirm) error
	SuspendUser(ctx context.Context, id string) (*domain.User, error)
	ActivateUser(ctx context.Context, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string, confirm Confirm) error

	ApproveJob(ctx context.Context, id string) (*domain.Job, error)
	ToggleJobStatus(ctx context.Context, id string) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string, confirm Confirm) error

	ApproveBooking(ctx context.Context, id, notes string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, id, reason string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string, confirm Confirm) error
}

type DashboardService interface {
	Refresh(ctx context.Context) error
	Stats(ctx context.Context) (domain.DashboardStats, error)
	RecentActivity(ctx context.Context) ([]domain.Activity, error)
	Notifications(ctx context.Context) ([]domain.Notification, int, error) // feed, unread count
	MarkNotificationsRead(ctx context.Context, ids []string) error
	MarkAllNotificationsRead(ctx context.Context) (int, error)
	Users(ctx context.Context, filter derive.UserFilter, order derive.SortOrder) ([]domain.User, error)
	Jobs(ctx context.Context, filter derive.JobFilter) ([]domain.Job, error)
	Bookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error)
}

type AccessService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context) error
	// Current returns the established session or an UnauthorizedError
	Current(ctx context.Context) (*domain.Session, error)
}

type EmailService interface {
	SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error
}
