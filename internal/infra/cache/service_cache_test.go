package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	storage "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
)

type countingRepo struct {
	services map[string]*domain.Service
	calls    int
}

func (r *countingRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	r.calls++
	if svc, ok := r.services[id]; ok {
		return svc, nil
	}
	return nil, storage.ErrServiceNotFound
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newTestCache(t *testing.T) (*ServiceCache, *countingRepo) {
	t.Helper()

	repo := &countingRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Haircut", Price: 50000, Duration: 45},
	}}

	c, err := NewServiceCache(repo, 8, nopLogger{})
	require.NoError(t, err)
	return c, repo
}

func TestGetByID_ReadThrough(t *testing.T) {
	c, repo := newTestCache(t)
	ctx := context.Background()

	svc, err := c.GetByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Haircut", svc.Name)
	assert.Equal(t, 1, repo.calls)

	// Повторное чтение идет из кэша
	_, err = c.GetByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestGetByID_NotFoundIsNotCached(t *testing.T) {
	c, repo := newTestCache(t)
	ctx := context.Background()

	_, err := c.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrServiceNotFound)
	assert.Equal(t, 1, repo.calls)

	// Услуга могла появиться после первого запроса
	repo.services["missing"] = &domain.Service{ID: "missing", Name: "New", Price: 1, Duration: 30}

	svc, err := c.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, "New", svc.Name)
	assert.Equal(t, 2, repo.calls)
}

func TestInvalidate(t *testing.T) {
	c, repo := newTestCache(t)
	ctx := context.Background()

	_, err := c.GetByID(ctx, "svc-1")
	require.NoError(t, err)

	c.Invalidate("svc-1")

	repo.services["svc-1"].Name = "Haircut Deluxe"

	svc, err := c.GetByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Haircut Deluxe", svc.Name)
	assert.Equal(t, 2, repo.calls)
}
