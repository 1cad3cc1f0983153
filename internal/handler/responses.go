package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a request with no other payload
type OKResponse struct {
	OK bool `json:"ok"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and answers with the mapped status
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	switch {
	case errors.Is(err, domain.ErrInvalidCreatureType):
		log.Error(LogMsgCatalogDrift, "operation", op, "error", err, "catalog_drift", true)
	case status >= http.StatusInternalServerError:
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	default:
		log.Debug(LogMsgServiceError, "operation", op, "error", err)
	}

	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgNotFoundError      = "Not found"
	ErrMsgInvalidMergeError  = "Creatures must be the same type and level to merge"
	ErrMsgMaxLevelError      = "Creature is already at max level"
	ErrMsgUnknownItemError   = "Unknown item"
	ErrMsgStarsItemError     = "This item is paid with Stars"
	ErrMsgNoFreeSlotError    = "No free slot on the grid"
	ErrMsgNotCompletedError  = "Quest not yet completed"
	ErrMsgClaimedError       = "Reward already claimed"
	ErrMsgAlreadyReferredErr = "Already used a referral code"
	ErrMsgSelfReferralError  = "Cannot use your own referral code"
	ErrMsgBadReferralError   = "Invalid referral code"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgConflictError      = "Game was updated elsewhere. Please retry."
	ErrMsgPaymentsOffError   = "Payments not configured"
	ErrMsgBadPaymentError    = "Payment does not match any item"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	var short *domain.InsufficientResourcesError
	if errors.As(err, &short) {
		return http.StatusBadRequest, short.Error()
	}

	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidCreatureType):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError
	case errors.Is(err, domain.ErrInvalidMerge):
		return http.StatusBadRequest, ErrMsgInvalidMergeError
	case errors.Is(err, domain.ErrMaxLevelReached):
		return http.StatusBadRequest, ErrMsgMaxLevelError
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusBadRequest, ErrMsgUnknownItemError
	case errors.Is(err, domain.ErrWrongPaymentChannel):
		return http.StatusBadRequest, ErrMsgStarsItemError
	case errors.Is(err, domain.ErrInsufficientResources):
		return http.StatusBadRequest, domain.ErrMsgInsufficientResources
	case errors.Is(err, domain.ErrNoFreeSlot):
		return http.StatusBadRequest, ErrMsgNoFreeSlotError
	case errors.Is(err, domain.ErrNotCompleted):
		return http.StatusBadRequest, ErrMsgNotCompletedError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgClaimedError
	case errors.Is(err, domain.ErrAlreadyReferred):
		return http.StatusBadRequest, ErrMsgAlreadyReferredErr
	case errors.Is(err, domain.ErrSelfReferral):
		return http.StatusBadRequest, ErrMsgSelfReferralError
	case errors.Is(err, domain.ErrInvalidReferral):
		return http.StatusNotFound, ErrMsgBadReferralError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, payment.ErrPaymentsDisabled):
		return http.StatusServiceUnavailable, ErrMsgPaymentsOffError
	case errors.Is(err, payment.ErrBadPayload), errors.Is(err, payment.ErrPriceMismatch):
		return http.StatusBadRequest, ErrMsgBadPaymentError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
