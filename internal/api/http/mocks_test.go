package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/service"
)

// MockModerationService
type MockModerationService struct {
	mock.Mock
}

func userResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func jobResult(args mock.Arguments) (*domain.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func bookingResult(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockModerationService) ApproveUser(ctx context.Context, id string) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}
func (m *MockModerationService) RejectUser(ctx context.Context, id string, confirm service.Confirm) error {
	return m.Called(ctx, id, confirm).Error(0)
}
func (m *MockModerationService) SuspendUser(ctx context.Context, id string) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}
func (m *MockModerationService) ActivateUser(ctx context.Context, id string) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}
func (m *MockModerationService) DeleteUser(ctx context.Context, id string, confirm service.Confirm) error {
	return m.Called(ctx, id, confirm).Error(0)
}
func (m *MockModerationService) ApproveJob(ctx context.Context, id string) (*domain.Job, error) {
	return jobResult(m.Called(ctx, id))
}
func (m *MockModerationService) ToggleJobStatus(ctx context.Context, id string) (*domain.Job, error) {
	return jobResult(m.Called(ctx, id))
}
func (m *MockModerationService) DeleteJob(ctx context.Context, id string, confirm service.Confirm) error {
	return m.Called(ctx, id, confirm).Error(0)
}
func (m *MockModerationService) ApproveBooking(ctx context.Context, id, notes string) (*domain.Booking, error) {
	return bookingResult(m.Called(ctx, id, notes))
}
func (m *MockModerationService) RejectBooking(ctx context.Context, id, reason string) (*domain.Booking, error) {
	return bookingResult(m.Called(ctx, id, reason))
}
func (m *MockModerationService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Booking, error) {
	return bookingResult(m.Called(ctx, id, status))
}
func (m *MockModerationService) DeleteBooking(ctx context.Context, id string, confirm service.Confirm) error {
	return m.Called(ctx, id, confirm).Error(0)
}

// MockDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockDashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}
func (m *MockDashboardService) RecentActivity(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}
func (m *MockDashboardService) Notifications(ctx context.Context) ([]domain.Notification, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}
func (m *MockDashboardService) MarkNotificationsRead(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}
func (m *MockDashboardService) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockDashboardService) Users(ctx context.Context, filter derive.UserFilter, order derive.SortOrder) ([]domain.User, error) {
	args := m.Called(ctx, filter, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockDashboardService) Jobs(ctx context.Context, filter derive.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockDashboardService) Bookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockDashboardService) AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

// MockAccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAccessService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockAccessService) Current(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
