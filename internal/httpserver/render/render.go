// Package render writes JSON bodies and maps domain errors to HTTP status codes.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// MaxBodyBytes caps request bodies decoded by DecodeJSON.
const MaxBodyBytes = 1 << 20

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidCredentials         = "invalid_credentials"
	CodeMissingCredential          = "missing_credential"
	CodeInvalidOrExpiredCredential = "invalid_or_expired_credential"
	CodeNotFound                   = "not_found"
	CodeMalformedIdentifier        = "malformed_identifier"
	CodeValidationFailure          = "validation_failure"
	CodeTooManyRequests            = "too_many_requests"
	CodeInternal                   = "internal_error"
	CodeMethodNotAllowed           = "method_not_allowed"
)

// ErrorResponse is the body of every non-2xx API answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Problem writes an ErrorResponse.
func Problem(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: message, Code: code})
}

// Error maps err to a status and code. Unknown errors are logged and
// reported as 500 without leaking their text.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, domain.ErrMissingCredential):
		Problem(w, http.StatusUnauthorized, CodeMissingCredential, "Missing or invalid token")
	case errors.Is(err, domain.ErrInvalidOrExpiredCredential):
		Problem(w, http.StatusUnauthorized, CodeInvalidOrExpiredCredential, "Invalid or expired token")
	case errors.Is(err, domain.ErrNotFound):
		Problem(w, http.StatusNotFound, CodeNotFound, "Service not found")
	case errors.Is(err, domain.ErrMalformedIdentifier):
		Problem(w, http.StatusBadRequest, CodeMalformedIdentifier, "Invalid service ID")
	case errors.Is(err, domain.ErrValidation):
		Problem(w, http.StatusBadRequest, CodeValidationFailure, err.Error())
	default:
		log.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
		Problem(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
	}
}

// DecodeJSON reads a single JSON document from the request body into v.
// Syntax and type errors come back wrapped in domain.ErrValidation.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body too large", domain.ErrValidation)
		}
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", domain.ErrValidation)
	}
	return nil
}
