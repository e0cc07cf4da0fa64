package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveBookingStatus(t *testing.T) {
	t.Run("canonical field wins", func(t *testing.T) {
		assert.Equal(t, "approved", EffectiveBookingStatus("approved", "pending"))
	})
	t.Run("legacy field when canonical absent", func(t *testing.T) {
		assert.Equal(t, "accepted", EffectiveBookingStatus("", "accepted"))
	})
	t.Run("both absent", func(t *testing.T) {
		assert.Equal(t, "", EffectiveBookingStatus("", ""))
	})
}

func TestNormalizeBookingStatus(t *testing.T) {
	assert.Equal(t, BookingStatusAccepted, NormalizeBookingStatus("", "accepted", "b1"))
	assert.Equal(t, BookingStatusRejected, NormalizeBookingStatus("Rejected", "pending", "b1"))
	assert.Equal(t, BookingStatusUnknown, NormalizeBookingStatus("on-hold", "", "b1"))
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseUserStatus(" Active ")
	assert.NoError(t, err)
	assert.Equal(t, UserStatusActive, s)

	s, err = ParseUserStatus("banned")
	assert.Equal(t, UserStatusUnknown, s)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = ParsePaymentStatus("refunded")
	assert.Error(t, err)

	js, err := ParseJobStatus("closed")
	assert.NoError(t, err)
	assert.Equal(t, JobStatusClosed, js)
}

func TestNormalizeUserRole_KeepsUnknown(t *testing.T) {
	r := NormalizeUserRole("moderator", "u1")
	assert.Equal(t, UserRole("moderator"), r)
	assert.False(t, User{Role: r}.IsAdmin())
}

func TestBookingSubStates(t *testing.T) {
	b := Booking{AdminApproval: true}
	assert.True(t, b.AwaitingWorker())
	assert.False(t, b.FullyApproved())

	b.WorkerApproval = true
	assert.False(t, b.AwaitingWorker())
	assert.True(t, b.FullyApproved())
}

func TestJobVariants(t *testing.T) {
	seeker := Job{Type: JobTypeWorkerSeeking, Details: SeekerDetails{ExpectedSalary: decimal.NewFromInt(500), Skills: []string{"plumbing"}}}
	offer := Job{Type: JobTypeEmployerPosted, Details: OfferDetails{Budget: decimal.NewFromInt(1200), RequiredSkills: []string{"wiring"}}}

	_, ok := seeker.Offer()
	assert.False(t, ok)
	d, ok := seeker.Seeker()
	assert.True(t, ok)
	assert.Equal(t, []string{"plumbing"}, d.Skills)
	assert.True(t, seeker.Budget().Equal(decimal.NewFromInt(500)))
	assert.True(t, offer.Budget().Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Job Seeker", seeker.Type.Label())
	assert.Equal(t, "Employer", offer.Type.Label())
}

func TestGatewayMessage(t *testing.T) {
	err := errors.Join(errors.New("ctx"), &GatewayError{Op: "users.approve", Message: "User not found"})
	assert.Equal(t, "User not found", GatewayMessage(err))
	assert.Equal(t, "", GatewayMessage(errors.New("plain")))
}
