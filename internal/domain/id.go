package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a fresh service identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateID checks that id has the shape produced by NewID. A well-formed
// id that matches no record is a NotFound, not a MalformedIdentifier.
func ValidateID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		return fmt.Errorf("%w: %q", ErrMalformedIdentifier, id)
	}
	return nil
}
