package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusUnknown   BookingStatus = "unknown"
)

func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch s := BookingStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusApproved,
		BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled:
		return s, nil
	}
	return BookingStatusUnknown, NewValidationError("decode booking", "unknown booking status %q", raw)
}

// EffectiveBookingStatus resolves the canonical bookingStatus field against
// the legacy status field. bookingStatus wins whenever it is present.
func EffectiveBookingStatus(bookingStatus, legacyStatus string) string {
	if strings.TrimSpace(bookingStatus) != "" {
		return bookingStatus
	}
	return legacyStatus
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusUnknown PaymentStatus = "unknown"
)

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return s, nil
	}
	return PaymentStatusUnknown, NewValidationError("update payment", "unknown payment status %q", raw)
}

// JobRef is a weak reference to the job a booking was made for.
type JobRef struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Booking carries a single resolved Status. The raw bookingStatus/status pair
// only exists on the wire.
type Booking struct {
	ID              string          `json:"id"`
	Worker          UserRef         `json:"worker"`
	WorkerPhone     string          `json:"workerPhone,omitempty"`
	Employer        UserRef         `json:"employer"`
	EmployerPhone   string          `json:"employerPhone,omitempty"`
	Job             JobRef          `json:"job"`
	Status          BookingStatus   `json:"status"`
	AdminApproval   bool            `json:"adminApproval"`
	WorkerApproval  bool            `json:"workerApproval"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	AdminNotes      string          `json:"adminNotes,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AgreedRate      decimal.Decimal `json:"agreedRate"`
	Duration        string          `json:"duration,omitempty"`
	Location        string          `json:"location,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AwaitingWorker is the sub-state where the admin approved but the worker has not.
func (b Booking) AwaitingWorker() bool {
	return b.AdminApproval && !b.WorkerApproval
}

func (b Booking) FullyApproved() bool {
	return b.AdminApproval && b.WorkerApproval
}
