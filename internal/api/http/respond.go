package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		vErr    *domain.ValidationError
		unauth  *domain.UnauthorizedError
		partial *domain.AggregationPartialFailure
		gwErr   *domain.GatewayError
	)
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", vErr.Message)
	case errors.Is(err, domain.ErrConfirmationDeclined):
		respondError(w, http.StatusPreconditionRequired, "confirmation_required", "Confirm this action with ?confirm=true")
	case errors.Is(err, domain.ErrActionInFlight):
		respondError(w, http.StatusConflict, "action_in_flight", err.Error())
	case errors.As(err, &unauth):
		respondError(w, http.StatusUnauthorized, "unauthorized", unauth.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &partial):
		respondError(w, http.StatusServiceUnavailable, "partial_failure", partial.Error())
	case errors.As(err, &gwErr):
		respondError(w, http.StatusBadGateway, "gateway_error", gwErr.Error())
	default:
		logger.Error("Unhandled error in admin API", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
