package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound             = errors.New("entity not found")
	ErrActionInFlight       = errors.New("another action on this entity is still in progress")
	ErrConfirmationDeclined = errors.New("action was not confirmed")
)

// ValidationError reports an illegal transition or an invalid input. No gateway call is made.
type ValidationError struct {
	Action  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Action == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func NewValidationError(action, format string, args ...any) *ValidationError {
	return &ValidationError{Action: action, Message: fmt.Sprintf(format, args...)}
}

type UnauthorizedReason string

const (
	ReasonInvalidCredentials UnauthorizedReason = "invalid_credentials"
	ReasonRoleMismatch       UnauthorizedReason = "role_mismatch"
	ReasonAccountInactive    UnauthorizedReason = "account_inactive"
	ReasonSessionExpired     UnauthorizedReason = "session_expired"
	ReasonNoSession          UnauthorizedReason = "no_session"
)

// UnauthorizedError reports rejected credentials or a session that is no longer valid.
type UnauthorizedError struct {
	Reason  UnauthorizedReason
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Reason {
	case ReasonSessionExpired, ReasonNoSession:
		return "Session expired. Please log in again."
	default:
		return "Login failed. Please try again."
	}
}

// GatewayError wraps a failed persistence gateway call. Message is what the
// actor sees: the backend's own message when it sent one, else a per-action fallback.
type GatewayError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + " failed"
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// AggregationPartialFailure means at least one fan-out call of a refresh failed
// and the whole refresh was discarded.
type AggregationPartialFailure struct {
	Failed []string
	Err    error
}

func (e *AggregationPartialFailure) Error() string {
	return fmt.Sprintf("refresh discarded, failed sources [%s]: %v", strings.Join(e.Failed, ", "), e.Err)
}

func (e *AggregationPartialFailure) Unwrap() error {
	return e.Err
}

// GatewayMessage extracts the backend-supplied message from err, if any.
func GatewayMessage(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return ""
}
