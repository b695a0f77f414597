package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/store"
)

var _ store.ServiceStore = (*Store)(nil)

// Store keeps services in process memory. Nothing survives a restart;
// it backs tests and STATUSPAGE_STORE=memory.
type Store struct {
	mu       sync.RWMutex
	services map[string]*domain.Service // ID -> Service
	now      func() time.Time
}

// NewStore creates an empty memory store.
func NewStore() *Store {
	return &Store{
		services: make(map[string]*domain.Service),
		now:      time.Now,
	}
}

// WithClock replaces the clock used for CreatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create assigns an ID and CreatedAt and stores a copy of svc
func (s *Store) Create(_ context.Context, svc *domain.Service) error {
	svc.ID = domain.NewID()
	svc.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *svc
	s.services[svc.ID] = &clone
	return nil
}

// List returns all services ordered by creation time
func (s *Store) List(_ context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]*domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		clone := *svc
		services = append(services, &clone)
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].CreatedAt.Equal(services[j].CreatedAt) {
			return services[i].ID < services[j].ID
		}
		return services[i].CreatedAt.Before(services[j].CreatedAt)
	})
	return services, nil
}

// Get retrieves a service by ID
func (s *Store) Get(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	clone := *svc
	return &clone, nil
}

// Update applies fields to a stored service
func (s *Store) Update(_ context.Context, id string, fields domain.ServiceFields) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	fields.Apply(svc)
	clone := *svc
	return &clone, nil
}

// Delete removes a service
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	delete(s.services, id)
	return nil
}

// Count returns the number of stored services
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.services)
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }
