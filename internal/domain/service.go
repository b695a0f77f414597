package domain

import (
	"fmt"
	"strings"
	"time"
)

// Service is a monitored entity shown on the public status page.
//
// The same structure is persisted by every store backend and returned
// verbatim by the API, so its JSON tags are part of the wire contract.
type Service struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the store on creation (UUIDv4 string).
	ID string `json:"id"`

	// CreatedAt is set once when the store persists the record.
	CreatedAt time.Time `json:"createdAt"`

	// ─────────────────────────────
	// Mutable fields
	// ─────────────────────────────

	// Name is the human-readable label. Never blank.
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description"`

	// Status is always one of the values in AllStatuses.
	Status Status `json:"status"`
}

// ServiceFields carries the mutable fields of a Service as sent by a client.
// A nil pointer means "not provided".
type ServiceFields struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// ValidateCreate checks the fields required to create a new Service.
func (f ServiceFields) ValidateCreate() error {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return f.validateStatus()
}

// ValidateUpdate checks a partial update. Every field is optional but a
// provided name must not be blank.
func (f ServiceFields) ValidateUpdate() error {
	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	return f.validateStatus()
}

func (f ServiceFields) validateStatus() error {
	if f.Status == nil || *f.Status == "" {
		return nil
	}
	if !f.Status.Valid() {
		return fmt.Errorf("%w: status must be one of %s", ErrValidation, statusList())
	}
	return nil
}

// NewService builds an unsaved Service from validated fields, applying the
// default status. ID and CreatedAt are left for the store to assign.
func (f ServiceFields) NewService() *Service {
	svc := &Service{Status: StatusOperational}
	f.Apply(svc)
	return svc
}

// Apply overwrites the provided fields on svc. ID and CreatedAt are never
// touched. An empty status counts as not provided.
func (f ServiceFields) Apply(svc *Service) {
	if f.Name != nil {
		svc.Name = *f.Name
	}
	if f.Description != nil {
		svc.Description = *f.Description
	}
	if f.Status != nil && *f.Status != "" {
		svc.Status = *f.Status
	}
}

// Fields returns the mutable fields of svc as a fully populated ServiceFields.
func (s *Service) Fields() ServiceFields {
	name, desc, status := s.Name, s.Description, s.Status
	return ServiceFields{Name: &name, Description: &desc, Status: &status}
}
