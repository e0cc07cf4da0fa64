package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/rules"
)

// mutation describes one moderation action on an entity of type T.
type mutation[T any] struct {
	kind     domain.EntityKind
	id       string
	action   rules.Action
	fallback string // shown when the gateway gives no message
	confirm  Confirm
	detail   string

	items   func(s *derive.Snapshot) *[]T
	idOf    func(e T) string
	next    func(e T) (rules.Outcome[T], error)
	call    func(ctx context.Context, e T, out rules.Outcome[T]) error
	refetch bool
	after   func(ctx context.Context, e T)
}

// execute runs lookup, rule check, confirmation, the single gateway call and
// the cache update, in that order. The cache is only touched after the
// gateway call succeeded.
func execute[T any](ctx context.Context, c *Controller, m mutation[T]) (result *T, err error) {
	method := fmt.Sprintf("Controller.%s", m.action)
	logger.EnterMethod(method, "entity", m.kind, "id", m.id)
	defer func() {
		if err != nil {
			logger.ExitMethodWithError(method, err, "entity", m.kind, "id", m.id)
		} else {
			logger.ExitMethod(method, "entity", m.kind, "id", m.id)
		}
	}()

	release, err := c.begin(m.kind, m.id)
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	entity, i := findByID(*m.items(&snap), m.id, m.idOf)
	if i < 0 {
		return nil, fmt.Errorf("%s %s: %w", m.kind, m.id, domain.ErrNotFound)
	}

	out, err := m.next(entity)
	if err != nil {
		return nil, err
	}

	if !out.Changed && !out.Deleted {
		logger.Debug("Action leaves entity unchanged, skipping gateway call", "entity", m.kind, "id", m.id, "action", m.action)
		return &out.Entity, nil
	}

	if rules.RequiresConfirmation(m.kind, m.action) {
		prompt := fmt.Sprintf("Are you sure you want to %s this %s?", m.action, m.kind)
		if m.confirm == nil || !m.confirm(prompt) {
			return nil, domain.ErrConfirmationDeclined
		}
	}

	if err := c.invoke(ctx, m.fallback, func(ctx context.Context) error { return m.call(ctx, entity, out) }); err != nil {
		return nil, err
	}

	final := out.Entity
	c.patch(func(s *derive.Snapshot) { final = reapply(m.items(s), m.idOf, out, m.next) })

	if m.refetch {
		if err := c.Refresh(ctx); err != nil {
			logger.Warn("Re-fetch after action failed, keeping patched cache", "entity", m.kind, "id", m.id, "error", err)
		}
	}

	c.record(ctx, m.kind, m.id, string(m.action), m.detail)
	if m.after != nil {
		m.after(ctx, final)
	}

	if out.Deleted {
		return nil, nil
	}
	return &final, nil
}

// invoke performs one gateway call and normalises whatever comes back into
// the error taxonomy. Panics become a GatewayError with the fallback message.
func (c *Controller) invoke(ctx context.Context, fallback string, call func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic in gateway call", "panic", r)
			err = &domain.GatewayError{Op: fallback, Message: fallback, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	err = call(ctx)
	if err == nil {
		return nil
	}

	var unauth *domain.UnauthorizedError
	if errors.As(err, &unauth) {
		c.handleUnauthorized(ctx, err)
		return err
	}
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		if gwErr.Message == "" {
			withMsg := *gwErr
			withMsg.Message = fallback
			return &withMsg
		}
		return gwErr
	}
	return &domain.GatewayError{Op: fallback, Message: fallback, Err: err}
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, int) {
	for i, it := range items {
		if idOf(it) == id {
			return it, i
		}
	}
	var zero T
	return zero, -1
}

func userID(u domain.User) string       { return u.ID }
func jobID(j domain.Job) string         { return j.ID }
func bookingID(b domain.Booking) string { return b.ID }

func userRecords(s *derive.Snapshot) *[]domain.User       { return &s.Users }
func jobRecords(s *derive.Snapshot) *[]domain.Job         { return &s.Jobs }
func bookingRecords(s *derive.Snapshot) *[]domain.Booking { return &s.Bookings }

// reapply replays the action on the cached record, which a refresh may have
// replaced while the gateway call was running. A record that no longer takes
// the action stays as the backend reported it.
func reapply[T any](items *[]T, idOf func(T) string, out rules.Outcome[T], next func(T) (rules.Outcome[T], error)) T {
	cur, i := findByID(*items, idOf(out.Entity), idOf)
	if i < 0 {
		return out.Entity
	}
	if out.Deleted {
		*items = slices.Delete(*items, i, i+1)
		return out.Entity
	}
	again, err := next(cur)
	if err != nil || !again.Changed {
		return cur
	}
	(*items)[i] = again.Entity
	return again.Entity
}

func (c *Controller) userMutation(id string, action rules.Action, fallback string) mutation[domain.User] {
	return mutation[domain.User]{
		kind:     domain.EntityUser,
		id:       id,
		action:   action,
		fallback: fallback,
		items:    userRecords,
		idOf:     userID,
		next:     func(u domain.User) (rules.Outcome[domain.User], error) { return rules.NextUser(u, action) },
	}
}

func (c *Controller) ApproveUser(ctx context.Context, id string) (*domain.User, error) {
	m := c.userMutation(id, rules.ActionApprove, "Failed to approve user")
	m.call = func(ctx context.Context, u domain.User, _ rules.Outcome[domain.User]) error {
		return c.gw.Users.Approve(ctx, u.ID)
	}
	m.after = func(ctx context.Context, u domain.User) { c.notify(ctx, u, "approved", "") }
	return execute(ctx, c, m)
}

// RejectUser deletes a pending registration after confirmation.
func (c *Controller) RejectUser(ctx context.Context, id string, confirm Confirm) error {
	m := c.userMutation(id, rules.ActionReject, "Failed to reject user")
	m.confirm = confirm
	m.refetch = true
	m.call = func(ctx context.Context, u domain.User, _ rules.Outcome[domain.User]) error {
		return c.gw.Users.Delete(ctx, u.ID)
	}
	m.after = func(ctx context.Context, u domain.User) { c.notify(ctx, u, "rejected", "") }
	_, err := execute(ctx, c, m)
	return err
}

func (c *Controller) SuspendUser(ctx context.Context, id string) (*domain.User, error) {
	m := c.userMutation(id, rules.ActionSuspend, "Failed to suspend user")
	m.call = func(ctx context.Context, u domain.User, _ rules.Outcome[domain.User]) error {
		return c.gw.Users.Suspend(ctx, u.ID)
	}
	m.after = func(ctx context.Context, u domain.User) { c.notify(ctx, u, "suspended", "") }
	return execute(ctx, c, m)
}

func (c *Controller) ActivateUser(ctx context.Context, id string) (*domain.User, error) {
	m := c.userMutation(id, rules.ActionActivate, "Failed to activate user")
	m.call = func(ctx context.Context, u domain.User, _ rules.Outcome[domain.User]) error {
		return c.gw.Users.Activate(ctx, u.ID)
	}
	m.after = func(ctx context.Context, u domain.User) { c.notify(ctx, u, "activated", "") }
	return execute(ctx, c, m)
}

func (c *Controller) DeleteUser(ctx context.Context, id string, confirm Confirm) error {
	m := c.userMutation(id, rules.ActionDelete, "Failed to delete user")
	m.confirm = confirm
	m.call = func(ctx context.Context, u domain.User, _ rules.Outcome[domain.User]) error {
		return c.gw.Users.Delete(ctx, u.ID)
	}
	_, err := execute(ctx, c, m)
	return err
}

func (c *Controller) jobMutation(id string, action rules.Action, fallback string) mutation[domain.Job] {
	return mutation[domain.Job]{
		kind:     domain.EntityJob,
		id:       id,
		action:   action,
		fallback: fallback,
		items:    jobRecords,
		idOf:     jobID,
		next:     func(j domain.Job) (rules.Outcome[domain.Job], error) { return rules.NextJob(j, action) },
	}
}

// ApproveJob moves the job to the approved collection and re-fetches, since
// the job's provenance changes on the backend.
func (c *Controller) ApproveJob(ctx context.Context, id string) (*domain.Job, error) {
	m := c.jobMutation(id, rules.ActionApprove, "Failed to approve job")
	m.refetch = true
	m.call = func(ctx context.Context, j domain.Job, _ rules.Outcome[domain.Job]) error {
		return c.gw.Jobs.Approve(ctx, j.ID, j.Collection)
	}
	return execute(ctx, c, m)
}

func (c *Controller) ToggleJobStatus(ctx context.Context, id string) (*domain.Job, error) {
	m := c.jobMutation(id, rules.ActionToggleStatus, "Failed to update job status")
	m.call = func(ctx context.Context, j domain.Job, out rules.Outcome[domain.Job]) error {
		return c.gw.Jobs.SetStatus(ctx, j.ID, out.Entity.Status)
	}
	return execute(ctx, c, m)
}

// DeleteJob forwards the job's own collection tag unchanged.
func (c *Controller) DeleteJob(ctx context.Context, id string, confirm Confirm) error {
	m := c.jobMutation(id, rules.ActionDelete, "Failed to delete job")
	m.confirm = confirm
	m.call = func(ctx context.Context, j domain.Job, _ rules.Outcome[domain.Job]) error {
		return c.gw.Jobs.Delete(ctx, j.ID, j.Collection)
	}
	_, err := execute(ctx, c, m)
	return err
}

func (c *Controller) bookingMutation(id string, action rules.Action, fallback string, p rules.Payload) mutation[domain.Booking] {
	return mutation[domain.Booking]{
		kind:     domain.EntityBooking,
		id:       id,
		action:   action,
		fallback: fallback,
		items:    bookingRecords,
		idOf:     bookingID,
		next:     func(b domain.Booking) (rules.Outcome[domain.Booking], error) { return rules.NextBooking(b, action, p) },
	}
}

func (c *Controller) ApproveBooking(ctx context.Context, id, notes string) (*domain.Booking, error) {
	m := c.bookingMutation(id, rules.ActionApprove, "Failed to approve booking", rules.Payload{Notes: notes})
	m.detail = notes
	m.call = func(ctx context.Context, b domain.Booking, out rules.Outcome[domain.Booking]) error {
		return c.gw.Bookings.Approve(ctx, b.ID, out.Entity.AdminNotes)
	}
	return execute(ctx, c, m)
}

func (c *Controller) RejectBooking(ctx context.Context, id, reason string) (*domain.Booking, error) {
	m := c.bookingMutation(id, rules.ActionReject, "Failed to reject booking", rules.Payload{Reason: reason})
	m.detail = reason
	m.call = func(ctx context.Context, b domain.Booking, out rules.Outcome[domain.Booking]) error {
		return c.gw.Bookings.Reject(ctx, b.ID, out.Entity.RejectionReason)
	}
	return execute(ctx, c, m)
}

func (c *Controller) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Booking, error) {
	m := c.bookingMutation(id, rules.ActionUpdatePayment, "Failed to update payment status", rules.Payload{PaymentStatus: status})
	m.detail = string(status)
	m.call = func(ctx context.Context, b domain.Booking, out rules.Outcome[domain.Booking]) error {
		return c.gw.Bookings.SetPaymentStatus(ctx, b.ID, out.Entity.PaymentStatus)
	}
	return execute(ctx, c, m)
}

func (c *Controller) DeleteBooking(ctx context.Context, id string, confirm Confirm) error {
	m := c.bookingMutation(id, rules.ActionDelete, "Failed to delete booking", rules.Payload{})
	m.confirm = confirm
	m.call = func(ctx context.Context, b domain.Booking, _ rules.Outcome[domain.Booking]) error {
		return c.gw.Bookings.Delete(ctx, b.ID)
	}
	_, err := execute(ctx, c, m)
	return err
}
