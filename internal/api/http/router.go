package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"marketplace-admin-backend/internal/service"
)

// Server exposes the admin services as a JSON API.
type Server struct {
	moderation service.ModerationService
	dashboard  service.DashboardService
	access     service.AccessService
	validate   *validator.Validate
}

func NewServer(moderation service.ModerationService, dashboard service.DashboardService, access service.AccessService) *Server {
	return &Server{
		moderation: moderation,
		dashboard:  dashboard,
		access:     access,
		validate:   newValidator(),
	}
}

// Router builds the route table. Route names key into config.EndpointSecurityConfig.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(recoveryMiddleware, loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.sessionMiddleware)

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost).Name("auth.logout")
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet).Name("session.get")

	api.HandleFunc("/dashboard/stats", s.handleStats).Methods(http.MethodGet).Name("dashboard.stats")
	api.HandleFunc("/dashboard/activity", s.handleActivity).Methods(http.MethodGet).Name("dashboard.activity")
	api.HandleFunc("/dashboard/refresh", s.handleRefresh).Methods(http.MethodPost).Name("dashboard.refresh")

	api.HandleFunc("/notifications", s.handleNotifications).Methods(http.MethodGet).Name("notifications.list")
	api.HandleFunc("/notifications/read", s.handleMarkRead).Methods(http.MethodPost).Name("notifications.read")
	api.HandleFunc("/notifications/read-all", s.handleMarkAllRead).Methods(http.MethodPost).Name("notifications.read_all")

	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet).Name("users.list")
	api.HandleFunc("/users/{id}/approve", s.handleApproveUser).Methods(http.MethodPut).Name("users.approve")
	api.HandleFunc("/users/{id}/suspend", s.handleSuspendUser).Methods(http.MethodPut).Name("users.suspend")
	api.HandleFunc("/users/{id}/activate", s.handleActivateUser).Methods(http.MethodPut).Name("users.activate")
	api.HandleFunc("/users/{id}/reject", s.handleRejectUser).Methods(http.MethodPost).Name("users.reject")
	api.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete).Name("users.delete")

	api.HandleFunc("/jobs", s.handleListJobs).Methods(http.MethodGet).Name("jobs.list")
	api.HandleFunc("/jobs/{id}/approve", s.handleApproveJob).Methods(http.MethodPut).Name("jobs.approve")
	api.HandleFunc("/jobs/{id}/toggle-status", s.handleToggleJob).Methods(http.MethodPut).Name("jobs.toggle_status")
	api.HandleFunc("/jobs/{id}", s.handleDeleteJob).Methods(http.MethodDelete).Name("jobs.delete")

	api.HandleFunc("/bookings", s.handleListBookings).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings/{id}/approve", s.handleApproveBooking).Methods(http.MethodPut).Name("bookings.approve")
	api.HandleFunc("/bookings/{id}/reject", s.handleRejectBooking).Methods(http.MethodPut).Name("bookings.reject")
	api.HandleFunc("/bookings/{id}/payment", s.handlePayment).Methods(http.MethodPut).Name("bookings.payment")
	api.HandleFunc("/bookings/{id}", s.handleDeleteBooking).Methods(http.MethodDelete).Name("bookings.delete")

	api.HandleFunc("/audit", s.handleAudit).Methods(http.MethodGet).Name("audit.list")

	return r
}
