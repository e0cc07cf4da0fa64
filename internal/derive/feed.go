package derive

import (
	"fmt"
	"slices"
	"time"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/rules"
)

const completedJobWindow = 24 * time.Hour

// ReadSet is the persisted set of notification ids the admin has already seen.
type ReadSet map[string]struct{}

func NewReadSet(ids []string) ReadSet {
	rs := make(ReadSet, len(ids))
	for _, id := range ids {
		rs[id] = struct{}{}
	}
	return rs
}

func (rs ReadSet) Has(id string) bool {
	_, ok := rs[id]
	return ok
}

// Feed builds the notification list, newest first. Read comes only from read.
func Feed(s Snapshot, read ReadSet, now time.Time) []domain.Notification {
	var feed []domain.Notification
	add := func(n domain.Notification) {
		n.Read = read.Has(n.ID)
		feed = append(feed, n)
	}

	for _, u := range s.Users {
		if u.IsAdmin() || u.Status != domain.UserStatusPending {
			continue
		}
		add(domain.Notification{
			ID:        "user-" + u.ID,
			Category:  domain.NotificationUserRegistration,
			Title:     "New user registration",
			Message:   fmt.Sprintf("%s registered as %s and is waiting for approval", u.DisplayName(), article(string(u.Role))),
			Timestamp: u.CreatedAt,
		})
	}

	for _, j := range s.Jobs {
		if j.IsApproved {
			continue
		}
		add(domain.Notification{
			ID:        "job-" + j.ID,
			Category:  domain.NotificationJobPost,
			Title:     "New job post",
			Message:   fmt.Sprintf("%q by %s is waiting for approval", j.Title, j.PostedBy.Name),
			Timestamp: j.CreatedAt,
		})
	}

	for _, b := range s.Bookings {
		switch {
		case rules.Actionable(b) && !b.AwaitingWorker():
			add(domain.Notification{
				ID:        "booking-" + b.ID,
				Category:  domain.NotificationBooking,
				Title:     "Booking awaiting approval",
				Message:   fmt.Sprintf("%s and %s for %q", b.Worker.Name, b.Employer.Name, b.Job.Title),
				Timestamp: b.CreatedAt,
			})
		case b.AwaitingWorker() && !closedBooking(b.Status):
			add(domain.Notification{
				ID:        "booking-" + b.ID,
				Category:  domain.NotificationBooking,
				Title:     "Booking awaiting worker",
				Message:   fmt.Sprintf("%s has not confirmed %q yet", b.Worker.Name, b.Job.Title),
				Timestamp: b.CreatedAt,
			})
		}
	}

	for _, j := range s.Jobs {
		if j.Status != domain.JobStatusCompleted || j.CompletedAt == nil {
			continue
		}
		age := now.Sub(*j.CompletedAt)
		if age < 0 || age > completedJobWindow {
			continue
		}
		add(domain.Notification{
			ID:        "job-completed-" + j.ID,
			Category:  domain.NotificationJobCompleted,
			Title:     "Job completed",
			Message:   fmt.Sprintf("%q was completed", j.Title),
			Timestamp: *j.CompletedAt,
		})
	}

	slices.SortStableFunc(feed, func(a, b domain.Notification) int { return b.Timestamp.Compare(a.Timestamp) })
	return feed
}

// FeedIDs lists the ids of a feed, in order.
func FeedIDs(feed []domain.Notification) []string {
	ids := make([]string, len(feed))
	for i, n := range feed {
		ids[i] = n.ID
	}
	return ids
}

func UnreadCount(feed []domain.Notification) int {
	n := 0
	for _, item := range feed {
		if !item.Read {
			n++
		}
	}
	return n
}

func closedBooking(s domain.BookingStatus) bool {
	return s == domain.BookingStatusRejected || s == domain.BookingStatusCancelled || s == domain.BookingStatusCompleted
}

func article(word string) string {
	if word == "" {
		return "a user"
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + word
	}
	return "a " + word
}
