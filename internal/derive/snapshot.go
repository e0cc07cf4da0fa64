// Package derive computes counts, filtered views, the notification feed and
// recent activity from a snapshot of the three collections. Every function is
// a pure function of its arguments.
package derive

import (
	"marketplace-admin-backend/internal/domain"
)

// Snapshot is one consistent read of users, jobs (both provenances) and bookings.
type Snapshot struct {
	Users    []domain.User
	Jobs     []domain.Job
	Bookings []domain.Booking
}

// Clone copies the slices so callers can patch without aliasing.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Users:    append([]domain.User(nil), s.Users...),
		Jobs:     append([]domain.Job(nil), s.Jobs...),
		Bookings: append([]domain.Booking(nil), s.Bookings...),
	}
}

// MergeUsers unions the full list with the pending list. The first list wins on duplicate ids.
func MergeUsers(all, pending []domain.User) []domain.User {
	seen := make(map[string]struct{}, len(all)+len(pending))
	out := make([]domain.User, 0, len(all)+len(pending))
	for _, list := range [][]domain.User{all, pending} {
		for _, u := range list {
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

// MergeJobs lists approved jobs before pending ones. A job found in both lists
// is an approval whose move did not finish; it is kept once, as pending, so
// approving it again completes the move.
func MergeJobs(approved, pending []domain.Job) []domain.Job {
	inPending := make(map[string]struct{}, len(pending))
	for _, j := range pending {
		inPending[j.ID] = struct{}{}
	}
	out := make([]domain.Job, 0, len(approved)+len(pending))
	for _, j := range approved {
		if _, dup := inPending[j.ID]; !dup {
			out = append(out, j)
		}
	}
	return append(out, pending...)
}

// ModerationUsers drops admin accounts.
func ModerationUsers(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !u.IsAdmin() {
			out = append(out, u)
		}
	}
	return out
}
