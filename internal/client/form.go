package client

import (
	"context"
	"sync/atomic"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

// ServiceForm is the single add/edit form. An ID means edit.
type ServiceForm struct {
	ID          string
	Name        string
	Description string
	Status      domain.Status
}

// NewServiceForm returns an empty add form with the default status.
func NewServiceForm() ServiceForm {
	return ServiceForm{Status: domain.StatusOperational}
}

// FormFor prefills an edit form from svc.
func FormFor(svc *domain.Service) ServiceForm {
	return ServiceForm{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Status:      svc.Status,
	}
}

// IsEdit reports whether submitting updates an existing service.
func (f ServiceForm) IsEdit() bool { return f.ID != "" }

func (f ServiceForm) fields() domain.ServiceFields {
	name, desc, status := f.Name, f.Description, f.Status
	return domain.ServiceFields{Name: &name, Description: &desc, Status: &status}
}

// Submitter sends a ServiceForm and refuses overlapping submits.
type Submitter struct {
	admin    *Admin
	inFlight atomic.Bool
}

// NewSubmitter builds a submitter over admin.
func NewSubmitter(admin *Admin) *Submitter {
	return &Submitter{admin: admin}
}

// Busy reports whether a submit is in flight.
func (s *Submitter) Busy() bool { return s.inFlight.Load() }

// Submit dispatches Update when the form has an ID and Create otherwise.
// API errors come back with the server message untouched.
func (s *Submitter) Submit(ctx context.Context, f ServiceForm) (*domain.Service, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.inFlight.Store(false)

	if f.IsEdit() {
		return s.admin.UpdateService(ctx, f.ID, f.fields())
	}
	return s.admin.CreateService(ctx, f.fields())
}
