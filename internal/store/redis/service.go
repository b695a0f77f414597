package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/store"
)

// maxUpdateAttempts bounds optimistic-lock retries when a watched key
// changes between read and write.
const maxUpdateAttempts = 3

var _ store.ServiceStore = (*Store)(nil)

// Store persists services as JSON documents in Redis.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for CreatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create assigns an ID and CreatedAt, then writes the document and its
// index entry in one MULTI/EXEC.
func (s *Store) Create(ctx context.Context, svc *domain.Service) error {
	svc.ID = domain.NewID()
	svc.CreatedAt = s.now().UTC()

	data, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("failed to marshal service: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ServiceKey(svc.ID), data, 0)
		pipe.ZAdd(ctx, IndexKey(), redis.Z{
			Score:  float64(svc.CreatedAt.UnixMilli()),
			Member: svc.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save service: %w", err)
	}
	return nil
}

// Get retrieves a service from Redis by ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Service, error) {
	data, err := s.client.Get(ctx, ServiceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return decode(data)
}

// List retrieves all services in creation order
func (s *Store) List(ctx context.Context) ([]*domain.Service, error) {
	ids, err := s.client.ZRange(ctx, IndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get service IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ServiceKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	services := make([]*domain.Service, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document: skip it
			continue
		}
		svc, err := decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", ids[i], err)
		}
		services = append(services, svc)
	}

	return services, nil
}

// Update applies fields under WATCH so a concurrent delete is observed as
// NotFound instead of being overwritten.
func (s *Store) Update(ctx context.Context, id string, fields domain.ServiceFields) (*domain.Service, error) {
	key := ServiceKey(id)
	var updated *domain.Service

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
			}
			return fmt.Errorf("failed to get service: %w", err)
		}

		svc, err := decode(data)
		if err != nil {
			return err
		}
		fields.Apply(svc)

		out, err := json.Marshal(svc)
		if err != nil {
			return fmt.Errorf("failed to marshal service: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = svc
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return nil, fmt.Errorf("failed to update service %s: key kept changing after %d attempts", id, maxUpdateAttempts)
}

// Delete removes a service document and its index entry
func (s *Store) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, ServiceKey(id))
		pipe.ZRem(ctx, IndexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decode(data []byte) (*domain.Service, error) {
	var svc domain.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service: %w", err)
	}
	return &svc, nil
}
