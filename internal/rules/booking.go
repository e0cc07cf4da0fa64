package rules

import (
	"strings"

	"marketplace-admin-backend/internal/domain"
)

// Actionable reports whether approve/reject/payment controls apply. The admin
// and worker approval flags play no part in it.
func Actionable(b domain.Booking) bool {
	open := b.Status == domain.BookingStatusPending || b.Status == domain.BookingStatusAccepted
	return open && b.Status != domain.BookingStatusApproved && b.Status != domain.BookingStatusRejected
}

func CanTransitionBooking(b domain.Booking, action Action) Decision {
	switch action {
	case ActionApprove, ActionReject:
		if !Actionable(b) {
			return deny("booking is %s and can no longer be approved or rejected", b.Status)
		}
		return allow()
	case ActionUpdatePayment, ActionDelete:
		return allow()
	}
	return deny("action %q is not defined for bookings", action)
}

// NextBooking applies action with its payload. A reject without a reason is
// refused before the status guard is consulted.
func NextBooking(b domain.Booking, action Action, p Payload) (Outcome[domain.Booking], error) {
	if action == ActionReject && strings.TrimSpace(p.Reason) == "" {
		return Outcome[domain.Booking]{Entity: b}, domain.NewValidationError(string(action), "rejection reason is required")
	}
	if action == ActionUpdatePayment {
		if _, err := domain.ParsePaymentStatus(string(p.PaymentStatus)); err != nil {
			return Outcome[domain.Booking]{Entity: b}, err
		}
	}
	if d := CanTransitionBooking(b, action); !d.Allowed {
		return Outcome[domain.Booking]{Entity: b}, refuse(action, d)
	}

	switch action {
	case ActionApprove:
		b.Status = domain.BookingStatusApproved
		b.AdminApproval = true
		b.AdminNotes = p.Notes
	case ActionReject:
		b.Status = domain.BookingStatusRejected
		b.RejectionReason = strings.TrimSpace(p.Reason)
	case ActionUpdatePayment:
		if b.PaymentStatus == p.PaymentStatus {
			return Outcome[domain.Booking]{Entity: b}, nil
		}
		b.PaymentStatus = p.PaymentStatus
	case ActionDelete:
		return Outcome[domain.Booking]{Entity: b, Deleted: true, Changed: true}, nil
	}
	return Outcome[domain.Booking]{Entity: b, Changed: true}, nil
}
