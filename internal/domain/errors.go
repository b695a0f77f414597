package domain

import "errors"

// Request-scoped failures. Every layer wraps these with %w and the HTTP
// boundary maps them to status codes with errors.Is.
var (
	// Authentication
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrMissingCredential          = errors.New("missing or invalid token")
	ErrInvalidOrExpiredCredential = errors.New("invalid or expired token")

	// Services
	ErrNotFound            = errors.New("service not found")
	ErrMalformedIdentifier = errors.New("invalid service ID")
	ErrValidation          = errors.New("validation failure")
)
