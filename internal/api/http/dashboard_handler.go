package http

import (
	"net/http"
	"strconv"

	"marketplace-admin-backend/internal/derive"
	"marketplace-admin-backend/internal/domain"
)

const maxAuditLimit = 500

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.dashboard.RecentActivity(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.handleStats(w, r)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	feed, unread, err := s.dashboard.Notifications(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if feed == nil {
		feed = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, NotificationsResponse{Items: feed, Unread: unread})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	if err := s.dashboard.MarkNotificationsRead(r.Context(), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.dashboard.MarkAllNotificationsRead(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"marked": n})
}

// handleListUsers accepts status, type, rating, sort and q. Empty means any.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter derive.UserFilter
	var err error

	if raw := q.Get("status"); raw != "" && raw != "all" {
		if filter.Status, err = domain.ParseUserStatus(raw); err != nil {
			writeError(w, err)
			return
		}
	}
	if raw := q.Get("type"); raw != "" && raw != "all" {
		if filter.Role, err = domain.ParseUserRole(raw); err != nil {
			writeError(w, err)
			return
		}
	}
	if filter.Rating, err = derive.ParseRatingBucket(q.Get("rating")); err != nil {
		writeError(w, &domain.ValidationError{Message: err.Error()})
		return
	}
	order, err := derive.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeError(w, &domain.ValidationError{Message: err.Error()})
		return
	}
	filter.Query = q.Get("q")

	users, err := s.dashboard.Users(r.Context(), filter, order)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter derive.JobFilter
	var err error

	switch view := q.Get("view"); view {
	case "", "all":
	case string(derive.JobViewApproved), string(derive.JobViewPending):
		filter.View = derive.JobView(view)
	default:
		writeError(w, domain.NewValidationError("", "unknown job view %q", view))
		return
	}
	if raw := q.Get("type"); raw != "" && raw != "all" {
		if filter.Type, err = domain.ParseJobType(raw); err != nil {
			writeError(w, err)
			return
		}
	}
	if raw := q.Get("status"); raw != "" && raw != "all" {
		if filter.Status, err = domain.ParseJobStatus(raw); err != nil {
			writeError(w, err)
			return
		}
	}

	jobs, err := s.dashboard.Jobs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	var status domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		var err error
		if status, err = domain.ParseBookingStatus(raw); err != nil {
			writeError(w, err)
			return
		}
	}

	bookings, err := s.dashboard.Bookings(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxAuditLimit {
			writeError(w, domain.NewValidationError("", "limit must be between 1 and %d", maxAuditLimit))
			return
		}
		limit = n
	}

	entries, err := s.dashboard.AuditTrail(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
