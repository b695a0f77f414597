package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s := NewStore(client).WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return s, mr
}

func create(t *testing.T, s *Store, name string, status domain.Status) *domain.Service {
	t.Helper()
	svc := &domain.Service{Name: name, Status: status}
	require.NoError(t, s.Create(context.Background(), svc))
	return svc
}

func TestStore_CreateAndGet(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	svc := create(t, s, "API", domain.StatusOperational)
	require.NoError(t, domain.ValidateID(svc.ID))
	assert.False(t, svc.CreatedAt.IsZero())

	assert.True(t, mr.Exists(ServiceKey(svc.ID)))
	assert.Equal(t, 0*time.Second, mr.TTL(ServiceKey(svc.ID)), "service documents must not expire")

	got, err := s.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.ID, got.ID)
	assert.Equal(t, "API", got.Name)
	assert.Equal(t, domain.StatusOperational, got.Status)
	assert.True(t, svc.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_GetUnknown(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), domain.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListCreationOrder(t *testing.T) {
	s, _ := newTestStore(t)

	first := create(t, s, "API", domain.StatusOperational)
	second := create(t, s, "DB", domain.StatusMajorOutage)
	third := create(t, s, "CDN", domain.StatusPartialOutage)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)
}

func TestStore_ListEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_ListSkipsDanglingIndexEntries(t *testing.T) {
	s, mr := newTestStore(t)

	svc := create(t, s, "API", domain.StatusOperational)
	_, err := mr.ZAdd(IndexKey(), 1, "ghost")
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, svc.ID, list[0].ID)
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	svc := create(t, s, "API", domain.StatusOperational)

	status := domain.StatusMajorOutage
	updated, err := s.Update(ctx, svc.ID, domain.ServiceFields{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMajorOutage, updated.Status)
	assert.Equal(t, "API", updated.Name)
	assert.Equal(t, svc.ID, updated.ID)
	assert.True(t, svc.CreatedAt.Equal(updated.CreatedAt))

	got, err := s.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMajorOutage, got.Status)
}

func TestStore_UpdateAfterDeleteDoesNotResurrect(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	svc := create(t, s, "API", domain.StatusOperational)
	require.NoError(t, s.Delete(ctx, svc.ID))

	name := "API v2"
	_, err := s.Update(ctx, svc.ID, domain.ServiceFields{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, mr.Exists(ServiceKey(svc.ID)))
}

func TestStore_Delete(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	keep := create(t, s, "API", domain.StatusOperational)
	drop := create(t, s, "DB", domain.StatusOperational)

	require.NoError(t, s.Delete(ctx, drop.ID))
	assert.False(t, mr.Exists(ServiceKey(drop.ID)))

	members, err := mr.ZMembers(IndexKey())
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, members)

	err = s.Delete(ctx, drop.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_Ping(t *testing.T) {
	s, mr := newTestStore(t)

	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "statuspage:service:abc", ServiceKey("abc"))
	assert.Equal(t, "statuspage:services:index", IndexKey())
}
