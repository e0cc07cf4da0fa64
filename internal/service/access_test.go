package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/security"
	"marketplace-admin-backend/internal/storage"
)

type resetCounter struct {
	n int
}

func (r *resetCounter) Reset() { r.n++ }

func newTestGate() (*accessGate, *MockAuthGateway, *storage.MemoryStore, *resetCounter) {
	auth := new(MockAuthGateway)
	store := storage.NewMemoryStore()
	cache := &resetCounter{}
	gate := NewAccessService(auth, store, cache).(*accessGate)
	return gate, auth, store, cache
}

func adminResult(status domain.UserStatus) *domain.LoginResult {
	return &domain.LoginResult{
		Token:   "tok-1",
		Role:    domain.UserRoleAdmin,
		Status:  status,
		Profile: domain.User{ID: "a1", Email: "admin@x.io", Role: domain.UserRoleAdmin, Status: status},
	}
}

func TestAccessGate_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gate, auth, store, cache := newTestGate()
		auth.On("Login", mock.Anything, "admin@x.io", "secret").Return(adminResult(domain.UserStatusActive), nil).Once()

		sess, err := gate.Login(ctx, "admin@x.io", "secret")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", sess.Token)
		assert.Equal(t, 1, cache.n)

		stored, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin@x.io", stored.Profile.Email)
	})

	t.Run("Role mismatch", func(t *testing.T) {
		gate, auth, store, _ := newTestGate()
		res := adminResult(domain.UserStatusActive)
		res.Role = domain.UserRoleWorker
		auth.On("Login", mock.Anything, "w@x.io", "pw").Return(res, nil).Once()

		_, err := gate.Login(ctx, "w@x.io", "pw")
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonRoleMismatch, unauth.Reason)
		assert.Equal(t, "Access denied. Admin credentials required.", unauth.Error())

		_, err = store.LoadSession(ctx)
		assert.ErrorIs(t, err, storage.ErrNoSession)
	})

	t.Run("Inactive admin", func(t *testing.T) {
		gate, auth, store, _ := newTestGate()
		auth.On("Login", mock.Anything, "admin@x.io", "pw").Return(adminResult(domain.UserStatusSuspended), nil).Once()

		_, err := gate.Login(ctx, "admin@x.io", "pw")
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonAccountInactive, unauth.Reason)

		_, err = store.LoadSession(ctx)
		assert.ErrorIs(t, err, storage.ErrNoSession)
	})

	t.Run("Backend message is kept", func(t *testing.T) {
		gate, auth, _, _ := newTestGate()
		auth.On("Login", mock.Anything, "admin@x.io", "bad").
			Return(nil, &domain.UnauthorizedError{Reason: domain.ReasonInvalidCredentials, Message: "Invalid email or password"}).Once()

		_, err := gate.Login(ctx, "admin@x.io", "bad")
		assert.EqualError(t, err, "Invalid email or password")
	})

	t.Run("Gateway error is left untouched", func(t *testing.T) {
		gate, auth, _, _ := newTestGate()
		original := &domain.UnauthorizedError{Reason: domain.ReasonSessionExpired}
		auth.On("Login", mock.Anything, "admin@x.io", "pw").Return(nil, original).Once()

		_, err := gate.Login(ctx, "admin@x.io", "pw")
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonInvalidCredentials, unauth.Reason)
		assert.Equal(t, "Login failed. Please try again.", unauth.Message)

		assert.Equal(t, domain.ReasonSessionExpired, original.Reason)
		assert.Empty(t, original.Message)
	})

	t.Run("Gateway failure message", func(t *testing.T) {
		gate, auth, _, _ := newTestGate()
		auth.On("Login", mock.Anything, "admin@x.io", "pw").
			Return(nil, &domain.GatewayError{Op: "auth.login", Status: 429, Message: "Too many attempts"}).Once()

		_, err := gate.Login(ctx, "admin@x.io", "pw")
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonInvalidCredentials, unauth.Reason)
		assert.Equal(t, "Too many attempts", unauth.Message)
	})

	t.Run("Fallback message", func(t *testing.T) {
		gate, auth, _, _ := newTestGate()
		auth.On("Login", mock.Anything, "admin@x.io", "pw").Return(nil, errors.New("connection reset")).Once()

		_, err := gate.Login(ctx, "admin@x.io", "pw")
		assert.EqualError(t, err, "Login failed. Please try again.")
	})
}

func TestAccessGate_Logout(t *testing.T) {
	ctx := context.Background()
	gate, _, store, cache := newTestGate()
	require.NoError(t, store.SaveSession(ctx, domain.Session{Token: "tok"}))

	require.NoError(t, gate.Logout(ctx))
	assert.Equal(t, 1, cache.n)
	_, err := store.LoadSession(ctx)
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestAccessGate_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("No session", func(t *testing.T) {
		gate, _, _, _ := newTestGate()
		_, err := gate.Current(ctx)
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonNoSession, unauth.Reason)
	})

	t.Run("Opaque token is trusted", func(t *testing.T) {
		gate, _, store, _ := newTestGate()
		require.NoError(t, store.SaveSession(ctx, domain.Session{Token: "opaque-token"}))

		sess, err := gate.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "opaque-token", sess.Token)
	})

	t.Run("Expired JWT is cleared", func(t *testing.T) {
		gate, _, store, cache := newTestGate()
		tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
		tok, err := tokens.GenerateAccessToken("a1", "admin@x.io", "admin", "active")
		require.NoError(t, err)
		require.NoError(t, store.SaveSession(ctx, domain.Session{Token: tok}))

		sess, err := gate.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, tok, sess.Token)

		gate.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = gate.Current(ctx)
		var unauth *domain.UnauthorizedError
		require.True(t, errors.As(err, &unauth))
		assert.Equal(t, domain.ReasonSessionExpired, unauth.Reason)
		assert.Equal(t, 1, cache.n)

		_, err = store.LoadSession(ctx)
		assert.ErrorIs(t, err, storage.ErrNoSession)
	})
}
