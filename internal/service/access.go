package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/gateway"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/security"
	"marketplace-admin-backend/internal/storage"
)

const (
	msgRoleMismatch    = "Access denied. Admin credentials required."
	msgAccountInactive = "Your account is not active. Please contact support."
	msgLoginFailed     = "Login failed. Please try again."
)

// CacheResetter is the part of the controller the gate needs on logout.
type CacheResetter interface {
	Reset()
}

type accessGate struct {
	auth     gateway.AuthGateway
	sessions storage.SessionStore
	cache    CacheResetter
	now      func() time.Time
}

func NewAccessService(auth gateway.AuthGateway, sessions storage.SessionStore, cache CacheResetter) AccessService {
	return &accessGate{auth: auth, sessions: sessions, cache: cache, now: time.Now}
}

// Login accepts only active admins. Nothing is stored unless every check passes.
func (g *accessGate) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	logger.EnterMethod("accessGate.Login", "email", email)

	res, err := g.auth.Login(ctx, email, password)
	if err != nil {
		logger.ExitMethodWithError("accessGate.Login", err, "email", email)
		msg := domain.GatewayMessage(err)
		var unauth *domain.UnauthorizedError
		if errors.As(err, &unauth) {
			msg = unauth.Message
		}
		if msg == "" {
			msg = msgLoginFailed
		}
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonInvalidCredentials, Message: msg}
	}

	if res.Role != domain.UserRoleAdmin {
		logger.ExitMethodRefused("accessGate.Login", "role mismatch", "email", email, "role", res.Role)
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonRoleMismatch, Message: msgRoleMismatch}
	}
	if res.Status != domain.UserStatusActive {
		logger.ExitMethodRefused("accessGate.Login", "account inactive", "email", email, "status", res.Status)
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonAccountInactive, Message: msgAccountInactive}
	}

	sess := domain.Session{Token: res.Token, Profile: res.Profile}
	if err := g.sessions.SaveSession(ctx, sess); err != nil {
		logger.ExitMethodWithError("accessGate.Login", err, "email", email)
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	// A new session never sees data cached for a previous one.
	if g.cache != nil {
		g.cache.Reset()
	}

	logger.ExitMethod("accessGate.Login", "email", email)
	return &sess, nil
}

// Logout clears the stored session and the controller cache.
func (g *accessGate) Logout(ctx context.Context) error {
	logger.EnterMethod("accessGate.Logout")
	if g.cache != nil {
		g.cache.Reset()
	}
	if err := g.sessions.ClearSession(ctx); err != nil {
		logger.ExitMethodWithError("accessGate.Logout", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.ExitMethod("accessGate.Logout")
	return nil
}

// Current returns the stored session. A session whose token has expired is
// cleared and reported as expired.
func (g *accessGate) Current(ctx context.Context) (*domain.Session, error) {
	sess, err := g.sessions.LoadSession(ctx)
	if errors.Is(err, storage.ErrNoSession) {
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonNoSession}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Token == "" {
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonNoSession}
	}

	if exp, ok := security.TokenExpiry(sess.Token); ok && !g.now().Before(exp) {
		logger.Info("Stored session expired", "expiredAt", exp)
		if g.cache != nil {
			g.cache.Reset()
		}
		if err := g.sessions.ClearSession(ctx); err != nil {
			logger.Error("Failed to clear expired session", "error", err)
		}
		return nil, &domain.UnauthorizedError{Reason: domain.ReasonSessionExpired}
	}
	return sess, nil
}
