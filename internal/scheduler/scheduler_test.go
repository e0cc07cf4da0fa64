package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-admin-backend/internal/config"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/jobs"
)

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context) error { return nil }

type noSession struct{}

func (noSession) Current(context.Context) (*domain.Session, error) {
	return nil, &domain.UnauthorizedError{Reason: domain.ReasonNoSession}
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers both jobs", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			DashboardRefresh:  "0 */5 * * * *",
			SessionCheck:      "0 * * * * *",
			JobTimeoutSeconds: 5,
		}}
		s := NewScheduler(jobs.NewJobRunner(noopRefresher{}, noSession{}, cfg))
		assert.True(t, s.IsRunning())
		assert.Equal(t, 2, s.Entries())

		s.Start()
		s.Stop()
	})

	t.Run("Invalid spec is skipped", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			DashboardRefresh:  "not a cron spec",
			SessionCheck:      "0 * * * * *",
			JobTimeoutSeconds: 5,
		}}
		s := NewScheduler(jobs.NewJobRunner(noopRefresher{}, noSession{}, cfg))
		assert.Equal(t, 1, s.Entries())
	})
}
