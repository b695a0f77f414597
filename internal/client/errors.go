package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotLoggedIn is returned by admin calls when no token is stored.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionExpired means the server rejected the stored token; it has
	// been cleared and the user must log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrSubmitInProgress is returned when a form is submitted while a
	// previous submit of the same form has not completed.
	ErrSubmitInProgress = errors.New("submit already in progress")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string // machine code from the body, may be empty
	Message    string // human message from the body, shown verbatim

	sessionExpired bool
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrSessionExpired) match 401s on admin calls.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.sessionExpired
}

func newAPIError(status int, code, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("request failed: %d %s", status, http.StatusText(status))
	}
	return &APIError{StatusCode: status, Code: code, Message: message}
}
