// Package rules decides which moderation actions are legal for an entity and
// what the entity looks like afterwards. Nothing here performs I/O.
package rules

import (
	"fmt"

	"marketplace-admin-backend/internal/domain"
)

type Action string

const (
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionSuspend       Action = "suspend"
	ActionActivate      Action = "activate"
	ActionDelete        Action = "delete"
	ActionToggleStatus  Action = "toggleStatus"
	ActionUpdatePayment Action = "updatePayment"
)

// Decision is the answer to "may this action run now".
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Payload carries the action inputs that are not part of the entity.
type Payload struct {
	Notes         string
	Reason        string
	PaymentStatus domain.PaymentStatus
}

// Outcome describes the entity after an action. Deleted means the entity is
// gone. Changed is false when the action is legal but leaves the entity as it
// was.
type Outcome[T any] struct {
	Entity  T
	Deleted bool
	Changed bool
}

// CanTransition dispatches on the entity's concrete type.
func CanTransition(entity any, action Action) Decision {
	switch e := entity.(type) {
	case domain.User:
		return CanTransitionUser(e, action)
	case domain.Job:
		return CanTransitionJob(e, action)
	case domain.Booking:
		return CanTransitionBooking(e, action)
	default:
		return deny("unsupported entity %T", entity)
	}
}

// RequiresConfirmation reports whether an action destroys data and therefore
// needs an explicit yes from the operator first.
func RequiresConfirmation(kind domain.EntityKind, action Action) bool {
	switch action {
	case ActionDelete:
		return true
	case ActionReject:
		return kind == domain.EntityUser
	}
	return false
}

func refuse(action Action, d Decision) error {
	return &domain.ValidationError{Action: string(action), Message: d.Reason}
}
