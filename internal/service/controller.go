package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/gateway"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/storage"
)

// Controller owns the cached snapshot of users, jobs and bookings. It is the
// only caller of the gateway's mutating operations and serves every derived
// dashboard view from the cache.
type Controller struct {
	gw       gateway.Gateway
	sessions storage.SessionStore
	audit    audit.Recorder
	email    EmailService
	now      func() time.Time

	mu        sync.RWMutex
	snap      derive.Snapshot
	loaded    bool
	issued    uint64 // last refresh sequence handed out
	committed uint64 // sequence the cache is at least as new as

	flightMu sync.Mutex
	inFlight map[string]struct{}
}

var (
	_ ModerationService = (*Controller)(nil)
	_ DashboardService  = (*Controller)(nil)
)

// NewController wires the controller. recorder and email may be nil.
func NewController(gw gateway.Gateway, sessions storage.SessionStore, recorder audit.Recorder, email EmailService) *Controller {
	if recorder == nil {
		recorder = audit.Noop{}
	}
	return &Controller{
		gw:       gw,
		sessions: sessions,
		audit:    recorder,
		email:    email,
		now:      time.Now,
		inFlight: map[string]struct{}{},
	}
}

// Refresh fetches all five lists concurrently and commits them as one
// snapshot. If any call fails nothing is committed and the previous snapshot
// stays. A refresh that finishes after a newer commit is dropped.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	logger.EnterMethod("Controller.Refresh", "seq", seq)

	var (
		allUsers, pendingUsers []domain.User
		approvedJobs, pendJobs []domain.Job
		bookings               []domain.Booking
		failedMu               sync.Mutex
		failed                 []string
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(source string, fn func(ctx context.Context) error) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &domain.GatewayError{Op: source, Err: fmt.Errorf("panic: %v", r)}
				}
				if err != nil && !errors.Is(err, context.Canceled) {
					failedMu.Lock()
					failed = append(failed, source)
					failedMu.Unlock()
				}
			}()
			return fn(gctx)
		})
	}

	fetch("users.listAll", func(ctx context.Context) (err error) {
		allUsers, err = c.gw.Users.ListAll(ctx)
		return err
	})
	fetch("users.listPending", func(ctx context.Context) (err error) {
		pendingUsers, err = c.gw.Users.ListPending(ctx)
		return err
	})
	fetch("jobs.listApproved", func(ctx context.Context) (err error) {
		approvedJobs, err = c.gw.Jobs.ListApproved(ctx)
		return err
	})
	fetch("jobs.listPending", func(ctx context.Context) (err error) {
		pendJobs, err = c.gw.Jobs.ListPending(ctx)
		return err
	})
	fetch("bookings.listAll", func(ctx context.Context) (err error) {
		bookings, err = c.gw.Bookings.ListAll(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.handleUnauthorized(ctx, err)
		if len(failed) == 0 {
			failed = []string{"refresh"}
		}
		logger.ExitMethodWithError("Controller.Refresh", err, "seq", seq, "failed", failed)
		return &domain.AggregationPartialFailure{Failed: failed, Err: err}
	}

	snap := derive.Snapshot{
		Users:    derive.MergeUsers(allUsers, pendingUsers),
		Jobs:     derive.MergeJobs(approvedJobs, pendJobs),
		Bookings: bookings,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.committed {
		logger.ExitMethodRefused("Controller.Refresh", "stale result", "seq", seq, "committed", c.committed)
		return nil
	}
	c.snap = snap
	c.loaded = true
	c.committed = seq
	logger.ExitMethod("Controller.Refresh", "seq", seq, "users", len(snap.Users), "jobs", len(snap.Jobs), "bookings", len(snap.Bookings))
	return nil
}

// Reset drops the cache. Refreshes already running when Reset is called are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = derive.Snapshot{}
	c.loaded = false
	c.committed = c.issued
}

// snapshot returns a copy of the cache, loading it first if needed.
func (c *Controller) snapshot(ctx context.Context) (derive.Snapshot, error) {
	c.mu.RLock()
	if c.loaded {
		s := c.snap.Clone()
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		return derive.Snapshot{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return derive.Snapshot{}, &domain.AggregationPartialFailure{Failed: []string{"refresh"}, Err: errors.New("no snapshot committed")}
	}
	return c.snap.Clone(), nil
}

// patch applies fn to the live cache and marks it newer than every refresh
// started so far.
func (c *Controller) patch(fn func(s *derive.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.snap)
	c.committed = c.issued
}

func flightKey(kind domain.EntityKind, id string) string {
	return string(kind) + ":" + id
}

// begin claims the entity for one action. The returned func releases it.
func (c *Controller) begin(kind domain.EntityKind, id string) (func(), error) {
	key := flightKey(kind, id)
	c.flightMu.Lock()
	defer c.flightMu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return nil, domain.ErrActionInFlight
	}
	c.inFlight[key] = struct{}{}
	return func() {
		c.flightMu.Lock()
		delete(c.inFlight, key)
		c.flightMu.Unlock()
	}, nil
}

// handleUnauthorized clears the session and the cache when err says the
// session is no longer valid.
func (c *Controller) handleUnauthorized(ctx context.Context, err error) {
	var unauth *domain.UnauthorizedError
	if !errors.As(err, &unauth) {
		return
	}
	logger.Warn("Session rejected by backend, clearing local session", "reason", unauth.Reason)
	if c.sessions != nil {
		if clearErr := c.sessions.ClearSession(context.WithoutCancel(ctx)); clearErr != nil {
			logger.Error("Failed to clear session", "error", clearErr)
		}
	}
	c.Reset()
}

func (c *Controller) actor(ctx context.Context) string {
	if c.sessions == nil {
		return "unknown"
	}
	sess, err := c.sessions.LoadSession(ctx)
	if err != nil || sess == nil {
		return "unknown"
	}
	if sess.Profile.Email != "" {
		return sess.Profile.Email
	}
	return sess.Profile.ID
}

func (c *Controller) record(ctx context.Context, kind domain.EntityKind, id, action, detail string) {
	entry := audit.Entry{
		Actor:      c.actor(ctx),
		EntityType: kind,
		EntityID:   id,
		Action:     action,
		Detail:     detail,
		At:         c.now().UTC(),
	}
	if err := c.audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("Failed to record audit entry", "entity", kind, "id", id, "action", action, "error", err)
	}
}

func (c *Controller) notify(ctx context.Context, u domain.User, status, reason string) {
	if c.email == nil || u.Email == "" {
		return
	}
	if err := c.email.SendAccountStatusNotification(ctx, u.Email, u.DisplayName(), status, reason); err != nil {
		logger.Warn("Failed to send account status e-mail", "userID", u.ID, "error", err)
	}
}
