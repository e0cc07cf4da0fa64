package jobs

import (
	"context"
	"errors"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// RefreshDashboard reloads users, jobs and bookings into the dashboard cache.
// Nothing is fetched while no admin is signed in.
func (jr *JobRunner) RefreshDashboard() {
	jr.runWithRecovery("RefreshDashboard", func(ctx context.Context) {
		if _, err := jr.access.Current(ctx); err != nil {
			logger.Debug("No valid admin session, dashboard refresh skipped", "error", err)
			return
		}

		err := jr.dashboard.Refresh(ctx)
		var partial *domain.AggregationPartialFailure
		switch {
		case err == nil:
			logger.Info("Dashboard cache refreshed")
		case errors.As(err, &partial):
			logger.Warn("Dashboard refresh discarded, previous snapshot kept", "failed", partial.Failed, "error", partial.Err)
		default:
			logger.Error("Dashboard refresh failed", "error", err)
		}
	})
}
