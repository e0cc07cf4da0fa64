package derive

import (
	"github.com/shopspring/decimal"

	"marketplace-admin-backend/internal/domain"
)

func Stats(s Snapshot) domain.DashboardStats {
	var st domain.DashboardStats

	for _, u := range s.Users {
		if u.IsAdmin() {
			continue
		}
		switch u.Status {
		case domain.UserStatusActive:
			st.TotalUsers++
		case domain.UserStatusPending:
			st.PendingApprovals++
		}
	}

	for _, j := range s.Jobs {
		if !j.IsApproved {
			st.PendingJobs++
			continue
		}
		switch j.Status {
		case domain.JobStatusActive:
			st.ActiveJobs++
		case domain.JobStatusCompleted:
			st.CompletedJobs++
		}
	}

	revenue := decimal.Zero
	st.TotalBookings = len(s.Bookings)
	for _, b := range s.Bookings {
		if b.Status == domain.BookingStatusPending {
			st.PendingBookings++
		}
		if b.AwaitingWorker() {
			st.AwaitingWorkerBookings++
		}
		if b.PaymentStatus == domain.PaymentStatusPaid {
			revenue = revenue.Add(b.TotalAmount)
		}
	}
	st.PaidRevenue = revenue.StringFixed(2)

	return st
}

// RatingCounts returns how many moderation users fall in each rating bucket.
func RatingCounts(users []domain.User) map[RatingBucket]int {
	counts := map[RatingBucket]int{}
	for _, u := range ModerationUsers(users) {
		for _, b := range ratingBuckets {
			if b.Match(u.Rating) {
				counts[b]++
			}
		}
	}
	return counts
}
