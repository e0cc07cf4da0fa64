package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-admin-backend/internal/config"
	"marketplace-admin-backend/internal/domain"
)

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) Current(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{Scheduler: config.SchedulerConfig{JobTimeoutSeconds: 5}}
}

func TestRefreshDashboard(t *testing.T) {
	t.Run("Refreshes with a session", func(t *testing.T) {
		refresher := new(MockRefresher)
		access := new(MockSessionChecker)
		access.On("Current", mock.Anything).Return(&domain.Session{Token: "tok"}, nil)
		refresher.On("Refresh", mock.Anything).Return(nil).Once()

		NewJobRunner(refresher, access, testConfig()).RefreshDashboard()
		refresher.AssertExpectations(t)
	})

	t.Run("Skipped without a session", func(t *testing.T) {
		refresher := new(MockRefresher)
		access := new(MockSessionChecker)
		access.On("Current", mock.Anything).Return(nil, &domain.UnauthorizedError{Reason: domain.ReasonNoSession})

		NewJobRunner(refresher, access, testConfig()).RefreshDashboard()
		refresher.AssertNotCalled(t, "Refresh", mock.Anything)
	})

	t.Run("Partial failure is logged, not raised", func(t *testing.T) {
		refresher := new(MockRefresher)
		access := new(MockSessionChecker)
		access.On("Current", mock.Anything).Return(&domain.Session{Token: "tok"}, nil)
		refresher.On("Refresh", mock.Anything).
			Return(&domain.AggregationPartialFailure{Failed: []string{"bookings.listAll"}, Err: errors.New("timeout")}).Once()

		assert.NotPanics(t, NewJobRunner(refresher, access, testConfig()).RefreshDashboard)
		refresher.AssertExpectations(t)
	})

	t.Run("Overlapping tick is skipped", func(t *testing.T) {
		refresher := new(MockRefresher)
		access := new(MockSessionChecker)
		access.On("Current", mock.Anything).Return(&domain.Session{Token: "tok"}, nil)

		entered := make(chan struct{})
		release := make(chan struct{})
		refresher.On("Refresh", mock.Anything).Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(nil).Once()

		jr := NewJobRunner(refresher, access, testConfig())
		done := make(chan struct{})
		go func() {
			jr.RefreshDashboard()
			close(done)
		}()
		<-entered

		jr.RefreshDashboard()
		close(release)
		<-done

		refresher.AssertNumberOfCalls(t, "Refresh", 1)
	})

	t.Run("Panic is recovered", func(t *testing.T) {
		refresher := new(MockRefresher)
		access := new(MockSessionChecker)
		access.On("Current", mock.Anything).Return(&domain.Session{Token: "tok"}, nil)
		refresher.On("Refresh", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Return(nil).Once()
		refresher.On("Refresh", mock.Anything).Return(nil).Once()

		jr := NewJobRunner(refresher, access, testConfig())
		require.NotPanics(t, jr.RefreshDashboard)

		// The guard is released after a panic.
		jr.RefreshDashboard()
		refresher.AssertNumberOfCalls(t, "Refresh", 2)
	})
}

func TestCheckSession(t *testing.T) {
	access := new(MockSessionChecker)
	access.On("Current", mock.Anything).Return(nil, &domain.UnauthorizedError{Reason: domain.ReasonSessionExpired}).Once()
	access.On("Current", mock.Anything).Return(nil, errors.New("disk full")).Once()

	jr := NewJobRunner(new(MockRefresher), access, testConfig())
	jr.CheckSession()
	jr.CheckSession()
	access.AssertNumberOfCalls(t, "Current", 2)
}

func TestRunAll(t *testing.T) {
	refresher := new(MockRefresher)
	access := new(MockSessionChecker)
	access.On("Current", mock.Anything).Return(&domain.Session{Token: "tok"}, nil)
	refresher.On("Refresh", mock.Anything).Return(nil).Once()

	NewJobRunner(refresher, access, testConfig()).RunAll()
	access.AssertNumberOfCalls(t, "Current", 2)
	refresher.AssertExpectations(t)
}
