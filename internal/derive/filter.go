package derive

import (
	"fmt"
	"strings"

	"marketplace-admin-backend/internal/domain"
)

type RatingBucket string

const (
	RatingAll     RatingBucket = ""
	RatingHigh    RatingBucket = "high"
	RatingMedium  RatingBucket = "medium"
	RatingLow     RatingBucket = "low"
	RatingUnrated RatingBucket = "unrated"
)

var ratingBuckets = []RatingBucket{RatingHigh, RatingMedium, RatingLow, RatingUnrated}

func ParseRatingBucket(raw string) (RatingBucket, error) {
	switch b := RatingBucket(strings.ToLower(raw)); b {
	case RatingAll, RatingHigh, RatingMedium, RatingLow, RatingUnrated:
		return b, nil
	case "all":
		return RatingAll, nil
	}
	return RatingAll, fmt.Errorf("unknown rating bucket %q", raw)
}

// Match: high >= 4, medium [2,4), low (0,2), unrated 0.
func (b RatingBucket) Match(rating float64) bool {
	switch b {
	case RatingHigh:
		return rating >= 4
	case RatingMedium:
		return rating >= 2 && rating < 4
	case RatingLow:
		return rating > 0 && rating < 2
	case RatingUnrated:
		return rating == 0
	default:
		return true
	}
}

// UserFilter axes combine with AND. Zero values mean "any".
type UserFilter struct {
	Status domain.UserStatus
	Role   domain.UserRole
	Rating RatingBucket
	Query  string
}

func (f UserFilter) Match(u domain.User) bool {
	if u.IsAdmin() {
		return false
	}
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if !f.Rating.Match(u.Rating) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(u.Phone, q)
	}
	return true
}

// FilterUsers keeps input order.
func FilterUsers(users []domain.User, f UserFilter) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

type JobView string

const (
	JobViewAll      JobView = ""
	JobViewApproved JobView = "approved"
	JobViewPending  JobView = "pending"
)

type JobFilter struct {
	View   JobView
	Type   domain.JobType
	Status domain.JobStatus
}

func (f JobFilter) Match(j domain.Job) bool {
	switch f.View {
	case JobViewApproved:
		if !j.IsApproved {
			return false
		}
	case JobViewPending:
		if j.IsApproved {
			return false
		}
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	return f.Status == "" || j.Status == f.Status
}

func FilterJobs(jobs []domain.Job, f JobFilter) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

// FilterBookings matches on the resolved status. An empty status keeps everything.
func FilterBookings(bookings []domain.Booking, status domain.BookingStatus) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
