package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/middleware"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If this function returns an error, the response has already been written.
//
// Example usage:
//
//	var req MergeRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Merge"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// requirePlayer returns the authenticated player id and language.
// ok is false when the response has already been written.
func requirePlayer(w http.ResponseWriter, r *http.Request) (playerID, lang string, ok bool) {
	playerID = middleware.GetPlayerID(r.Context())
	if playerID == middleware.EmptyPlayerID {
		logger.FromContext(r.Context()).Error(LogMsgMissingPlayerInCtx, "path", r.URL.Path)
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthenticated)
		return "", "", false
	}
	return playerID, middleware.GetLanguage(r.Context()), true
}

// GetOptionalQueryParam returns the query parameter or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	if value := r.URL.Query().Get(paramName); value != "" {
		return value
	}
	return defaultValue
}

// GetQueryParam returns a required query parameter, answering 400 when it is missing
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}
