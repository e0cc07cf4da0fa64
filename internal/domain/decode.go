package domain

import (
	"marketplace-admin-backend/internal/logger"
)

// The Normalize helpers are used by gateway decoders. A value outside the
// vocabulary is logged and mapped to the unknown status so one bad record
// never fails a whole list.

func NormalizeUserStatus(raw, id string) UserStatus {
	s, err := ParseUserStatus(raw)
	if err != nil {
		logger.Warn("Unrecognised status on decoded record", "entity", EntityUser, "id", id, "error", err)
	}
	return s
}

func NormalizeJobStatus(raw, id string) JobStatus {
	if raw == "" {
		return ""
	}
	s, err := ParseJobStatus(raw)
	if err != nil {
		logger.Warn("Unrecognised status on decoded record", "entity", EntityJob, "id", id, "error", err)
	}
	return s
}

// NormalizeBookingStatus resolves the dual status fields and validates the result.
func NormalizeBookingStatus(bookingStatus, legacyStatus, id string) BookingStatus {
	s, err := ParseBookingStatus(EffectiveBookingStatus(bookingStatus, legacyStatus))
	if err != nil {
		logger.Warn("Unrecognised status on decoded record", "entity", EntityBooking, "id", id, "error", err)
	}
	return s
}

// NormalizePaymentStatus treats an absent payment status as pending.
func NormalizePaymentStatus(raw, id string) PaymentStatus {
	if raw == "" {
		return PaymentStatusPending
	}
	s, err := ParsePaymentStatus(raw)
	if err != nil {
		logger.Warn("Unrecognised payment status on decoded record", "entity", EntityBooking, "id", id, "error", err)
	}
	return s
}

// NormalizeUserRole keeps unknown roles as-is so they are never mistaken for admin.
func NormalizeUserRole(raw, id string) UserRole {
	r, err := ParseUserRole(raw)
	if err != nil {
		logger.Warn("Unrecognised role on decoded record", "entity", EntityUser, "id", id, "error", err)
		return UserRole(raw)
	}
	return r
}

// NormalizeJobType defaults an unknown discriminator to an employer post.
func NormalizeJobType(raw, id string) JobType {
	t, err := ParseJobType(raw)
	if err != nil {
		logger.Warn("Unrecognised job type on decoded record", "entity", EntityJob, "id", id, "error", err)
		return JobTypeEmployerPosted
	}
	return t
}
