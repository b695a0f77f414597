// Package store defines the persistence contract for services. Backends
// live in the memory and redis subpackages.
package store

import (
	"context"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

// ServiceStore persists Service records.
//
// Implementations return errors wrapping domain.ErrNotFound when an id
// resolves to no record. Callers validate id shape before calling.
type ServiceStore interface {
	// Create assigns ID and CreatedAt to svc and persists it.
	Create(ctx context.Context, svc *domain.Service) error
	// List returns every stored service.
	List(ctx context.Context) ([]*domain.Service, error)
	// Get returns one service by id.
	Get(ctx context.Context, id string) (*domain.Service, error)
	// Update applies fields to the stored record and returns the result.
	Update(ctx context.Context, id string, fields domain.ServiceFields) (*domain.Service, error)
	// Delete removes the record permanently.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
