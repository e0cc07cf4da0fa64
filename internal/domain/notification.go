package domain

import "time"

type NotificationCategory string

const (
	NotificationUserRegistration NotificationCategory = "user_registration"
	NotificationJobPost          NotificationCategory = "job_post"
	NotificationBooking          NotificationCategory = "booking"
	NotificationJobCompleted     NotificationCategory = "job_completed"
)

// Notification is derived on every load. Read only comes from the persisted read-id set.
type Notification struct {
	ID        string               `json:"id"`
	Category  NotificationCategory `json:"category"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
}

type ActivityKind string

const (
	ActivityUserRegistered ActivityKind = "user"
	ActivityJobPosted      ActivityKind = "job"
)

type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Title     string       `json:"title"`
	Name      string       `json:"name"`
	Timestamp time.Time    `json:"timestamp"`
	TimeAgo   string       `json:"timeAgo"`
}

// DashboardStats are the counters shown on the overview page.
type DashboardStats struct {
	TotalUsers             int    `json:"totalUsers"`
	PendingApprovals       int    `json:"pendingApprovals"`
	PendingJobs            int    `json:"pendingJobs"`
	ActiveJobs             int    `json:"activeJobs"`
	CompletedJobs          int    `json:"completedJobs"`
	TotalBookings          int    `json:"totalBookings"`
	PendingBookings        int    `json:"pendingBookings"`
	AwaitingWorkerBookings int    `json:"awaitingWorkerBookings"`
	PaidRevenue            string `json:"paidRevenue"`
}
