package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/gateway"
)

// MockUserGateway
type MockUserGateway struct {
	mock.Mock
}

func (m *MockUserGateway) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserGateway) ListPending(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserGateway) Approve(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserGateway) Suspend(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserGateway) Activate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserGateway) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockJobGateway
type MockJobGateway struct {
	mock.Mock
}

func (m *MockJobGateway) ListApproved(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobGateway) ListPending(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobGateway) Approve(ctx context.Context, id, collection string) error {
	return m.Called(ctx, id, collection).Error(0)
}
func (m *MockJobGateway) SetStatus(ctx context.Context, id string, status domain.JobStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobGateway) Delete(ctx context.Context, id, collection string) error {
	return m.Called(ctx, id, collection).Error(0)
}

// MockBookingGateway
type MockBookingGateway struct {
	mock.Mock
}

func (m *MockBookingGateway) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingGateway) Approve(ctx context.Context, id, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}
func (m *MockBookingGateway) Reject(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}
func (m *MockBookingGateway) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockBookingGateway) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockAuthGateway
type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error {
	return m.Called(ctx, email, name, status, reason).Error(0)
}

// MockRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e audit.Entry) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockRecorder) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

type mockGateway struct {
	users    *MockUserGateway
	jobs     *MockJobGateway
	bookings *MockBookingGateway
	auth     *MockAuthGateway
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		users:    new(MockUserGateway),
		jobs:     new(MockJobGateway),
		bookings: new(MockBookingGateway),
		auth:     new(MockAuthGateway),
	}
}

func (g *mockGateway) gateway() gateway.Gateway {
	return gateway.Gateway{Users: g.users, Jobs: g.jobs, Bookings: g.bookings, Auth: g.auth}
}
