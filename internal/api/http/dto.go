package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"marketplace-admin-backend/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Profile domain.User `json:"profile"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type ApproveBookingRequest struct {
	AdminNotes string `json:"adminNotes" validate:"max=1000"`
}

// The reason is checked by the moderation rules so the message matches theirs.
type RejectBookingRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"max=1000"`
}

type PaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed"`
}

type NotificationsResponse struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var errMalformedBody = errors.New("malformed request body")

// decode reads a JSON body into dst and validates it. Validation failures
// come back as a domain ValidationError.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &domain.ValidationError{Message: fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())}
		}
		return err
	}
	return nil
}

func (s *Server) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errMalformedBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeError(w, err)
}
