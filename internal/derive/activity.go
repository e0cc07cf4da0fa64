package derive

import (
	"fmt"
	"slices"
	"time"

	"marketplace-admin-backend/internal/domain"
)

const (
	recentUserCount = 3
	recentJobCount  = 2
	recentCap       = 5
)

// RecentActivity lists the three newest registrations followed by the two
// newest approved job posts.
func RecentActivity(s Snapshot, now time.Time) []domain.Activity {
	users := SortUsers(ModerationUsers(s.Users), SortNewest)
	if len(users) > recentUserCount {
		users = users[:recentUserCount]
	}

	jobs := SortJobsNewest(FilterJobs(s.Jobs, JobFilter{View: JobViewApproved}))
	if len(jobs) > recentJobCount {
		jobs = jobs[:recentJobCount]
	}

	out := make([]domain.Activity, 0, len(users)+len(jobs))
	for _, u := range users {
		out = append(out, domain.Activity{
			ID:        "user-" + u.ID,
			Kind:      domain.ActivityUserRegistered,
			Title:     fmt.Sprintf("New %s registration", u.Role),
			Name:      u.DisplayName(),
			Timestamp: u.CreatedAt,
			TimeAgo:   TimeAgo(u.CreatedAt, now),
		})
	}
	for _, j := range jobs {
		out = append(out, domain.Activity{
			ID:        "job-" + j.ID,
			Kind:      domain.ActivityJobPosted,
			Title:     "Job posted",
			Name:      j.Title,
			Timestamp: j.CreatedAt,
			TimeAgo:   TimeAgo(j.CreatedAt, now),
		})
	}

	return slices.Clip(out[:min(len(out), recentCap)])
}

// TimeAgo renders elapsed time truncated to whole units: 59s, 59m, 23h, then days.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}
