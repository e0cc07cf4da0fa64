package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/service"
)

// confirmFromQuery turns ?confirm=true into the confirmation gate. Any other
// value declines.
func confirmFromQuery(r *http.Request) service.Confirm {
	confirmed := r.URL.Query().Get("confirm") == "true"
	return func(prompt string) bool {
		logger.Debug("Confirmation requested", "prompt", prompt, "confirmed", confirmed)
		return confirmed
	}
}

func entityResult[T any](w http.ResponseWriter, v *T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func deleted(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) userAction(fn func(ctx context.Context, id string) (*domain.User, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := fn(r.Context(), mux.Vars(r)["id"])
		entityResult(w, u, err)
	}
}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	s.userAction(s.moderation.ApproveUser)(w, r)
}

func (s *Server) handleSuspendUser(w http.ResponseWriter, r *http.Request) {
	s.userAction(s.moderation.SuspendUser)(w, r)
}

func (s *Server) handleActivateUser(w http.ResponseWriter, r *http.Request) {
	s.userAction(s.moderation.ActivateUser)(w, r)
}

func (s *Server) handleRejectUser(w http.ResponseWriter, r *http.Request) {
	deleted(w, s.moderation.RejectUser(r.Context(), mux.Vars(r)["id"], confirmFromQuery(r)))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	deleted(w, s.moderation.DeleteUser(r.Context(), mux.Vars(r)["id"], confirmFromQuery(r)))
}

func (s *Server) handleApproveJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.moderation.ApproveJob(r.Context(), mux.Vars(r)["id"])
	entityResult(w, j, err)
}

func (s *Server) handleToggleJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.moderation.ToggleJobStatus(r.Context(), mux.Vars(r)["id"])
	entityResult(w, j, err)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	deleted(w, s.moderation.DeleteJob(r.Context(), mux.Vars(r)["id"], confirmFromQuery(r)))
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	var req ApproveBookingRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	b, err := s.moderation.ApproveBooking(r.Context(), mux.Vars(r)["id"], req.AdminNotes)
	entityResult(w, b, err)
}

func (s *Server) handleRejectBooking(w http.ResponseWriter, r *http.Request) {
	var req RejectBookingRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	b, err := s.moderation.RejectBooking(r.Context(), mux.Vars(r)["id"], req.RejectionReason)
	entityResult(w, b, err)
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	b, err := s.moderation.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], domain.PaymentStatus(req.PaymentStatus))
	entityResult(w, b, err)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	deleted(w, s.moderation.DeleteBooking(r.Context(), mux.Vars(r)["id"], confirmFromQuery(r)))
}
