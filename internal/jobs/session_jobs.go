package jobs

import (
	"context"
	"errors"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// CheckSession drops a stored session whose token has expired so the next
// request is asked to log in again.
func (jr *JobRunner) CheckSession() {
	jr.runWithRecovery("CheckSession", func(ctx context.Context) {
		sess, err := jr.access.Current(ctx)
		var unauth *domain.UnauthorizedError
		switch {
		case err == nil:
			logger.Debug("Admin session valid", "admin", sess.Profile.Email)
		case errors.As(err, &unauth) && unauth.Reason == domain.ReasonSessionExpired:
			logger.Info("Expired admin session cleared")
		case errors.As(err, &unauth):
			logger.Debug("No admin session stored")
		default:
			logger.Error("Failed to check admin session", "error", err)
		}
	})
}
