package service

import (
	"context"
	"fmt"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

func (c *Controller) Stats(ctx context.Context) (domain.DashboardStats, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return derive.Stats(snap), nil
}

func (c *Controller) RecentActivity(ctx context.Context) ([]domain.Activity, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.RecentActivity(snap, c.now()), nil
}

// Notifications derives the feed and marks entries read from the persisted read set.
func (c *Controller) Notifications(ctx context.Context) ([]domain.Notification, int, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	ids, err := c.sessions.ReadNotificationIDs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load read notifications: %w", err)
	}
	feed := derive.Feed(snap, derive.NewReadSet(ids), c.now())
	return feed, derive.UnreadCount(feed), nil
}

func (c *Controller) MarkNotificationsRead(ctx context.Context, ids []string) error {
	if err := c.sessions.MarkNotificationsRead(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead persists every id of the current feed and returns how many there were.
func (c *Controller) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	feed, _, err := c.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	ids := derive.FeedIDs(feed)
	if err := c.MarkNotificationsRead(ctx, ids); err != nil {
		return 0, err
	}
	logger.Info("Marked all notifications read", "count", len(ids))
	return len(ids), nil
}

// Users returns moderation users (admins excluded) filtered then sorted.
func (c *Controller) Users(ctx context.Context, filter derive.UserFilter, order derive.SortOrder) ([]domain.User, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.SortUsers(derive.FilterUsers(snap.Users, filter), order), nil
}

func (c *Controller) Jobs(ctx context.Context, filter derive.JobFilter) ([]domain.Job, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.SortJobsNewest(derive.FilterJobs(snap.Jobs, filter)), nil
}

func (c *Controller) Bookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.SortBookingsNewest(derive.FilterBookings(snap.Bookings, status)), nil
}

func (c *Controller) AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error) {
	entries, err := c.audit.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
