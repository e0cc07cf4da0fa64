package jobs

import (
	"context"
	"sync"

	"marketplace-admin-backend/internal/config"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// Refresher reloads the dashboard cache.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// SessionChecker validates the stored admin session, clearing it when expired.
type SessionChecker interface {
	Current(ctx context.Context) (*domain.Session, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	dashboard Refresher
	access    SessionChecker
	config    *config.Config

	mu      sync.Mutex
	running map[string]bool
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(dashboard Refresher, access SessionChecker, cfg *config.Config) *JobRunner {
	return &JobRunner{
		dashboard: dashboard,
		access:    access,
		config:    cfg,
		running:   map[string]bool{},
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

func (jr *JobRunner) claim(jobName string) bool {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	if jr.running[jobName] {
		return false
	}
	jr.running[jobName] = true
	return true
}

func (jr *JobRunner) release(jobName string) {
	jr.mu.Lock()
	delete(jr.running, jobName)
	jr.mu.Unlock()
}

// runWithRecovery wraps job execution with panic recovery. A tick that fires
// while the previous run of the same job is still going is skipped.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	if !jr.claim(jobName) {
		logger.Warn("Previous run still in progress, skipping", "job", jobName)
		return
	}
	defer jr.release(jobName)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.config.JobTimeout())
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CheckSession()
	jr.RefreshDashboard()
}
