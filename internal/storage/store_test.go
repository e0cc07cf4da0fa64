package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-admin-backend/internal/domain"
)

func openStores(t *testing.T) map[string]SessionStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "session.db")
	sqliteStore, err := New(Config{Type: "sqlite", Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	memStore, err := New(Config{Type: "memory"})
	require.NoError(t, err)

	return map[string]SessionStore{"sqlite": sqliteStore, "memory": memStore}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.LoadSession(ctx)
			assert.ErrorIs(t, err, ErrNoSession)
			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			profile := domain.User{
				ID: "a1", Role: domain.UserRoleAdmin, Status: domain.UserStatusActive,
				Name: "Admin", Email: "admin@x.io", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			}
			require.NoError(t, store.SaveSession(ctx, domain.Session{Token: "t1", Profile: profile}))
			require.NoError(t, store.SaveSession(ctx, domain.Session{Token: "t2", Profile: profile}))

			sess, err := store.LoadSession(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t2", sess.Token)
			assert.Equal(t, profile, sess.Profile)

			token, err = store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t2", token)

			require.NoError(t, store.ClearSession(ctx))
			_, err = store.LoadSession(ctx)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestReadNotifications(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.MarkNotificationsRead(ctx, nil))
			require.NoError(t, store.MarkNotificationsRead(ctx, []string{"user-u1", "job-j1", "user-u1", ""}))
			require.NoError(t, store.MarkNotificationsRead(ctx, []string{"job-j1", "booking-b1"}))

			ids, err := store.ReadNotificationIDs(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"booking-b1", "job-j1", "user-u1"}, ids)

			// Logging out keeps the read set.
			require.NoError(t, store.ClearSession(ctx))
			ids, err = store.ReadNotificationIDs(ctx)
			require.NoError(t, err)
			assert.Len(t, ids, 3)
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "session.db")

	first, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.SaveSession(ctx, domain.Session{Token: "persisted"}))
	require.NoError(t, first.MarkNotificationsRead(ctx, []string{"user-u1"}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	token, err := second.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
	ids, err := second.ReadNotificationIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-u1"}, ids)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(Config{Type: "redis"})
	assert.Error(t, err)
}

func TestReadNotifications_LargeSet(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ids := make([]string, 20000)
			for i := range ids {
				ids[i] = fmt.Sprintf("booking-%05d", i)
			}
			require.NoError(t, store.MarkNotificationsRead(ctx, ids))
			// Marking again must not trip over the rows already stored.
			require.NoError(t, store.MarkNotificationsRead(ctx, ids[:1200]))

			read, err := store.ReadNotificationIDs(ctx)
			require.NoError(t, err)
			assert.Len(t, read, len(ids))
			assert.Equal(t, "booking-00000", read[0])
			assert.Equal(t, "booking-19999", read[len(read)-1])
		})
	}
}
