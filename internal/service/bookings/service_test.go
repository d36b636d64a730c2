package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	bookingRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/booking"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings/models"
	"github.com/barberx/BarberX-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking

	lastFilter *domain.BookingsFilter
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = &filter

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if !filter.IncludeInactive && filter.Status == nil && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && b.StartTime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !b.StartTime.Before(*filter.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type capturingPublisher struct {
	keys []string
}

func (p *capturingPublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func seedBooking(id string, start time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerName:    "Budi Santoso",
		CustomerPhone:   "081234567890",
		ServiceID:       "svc-haircut",
		StartTime:       start,
		DurationMinutes: 45,
		Status:          status,
		ServiceName:     "Haircut & Wash",
		ServicePrice:    50000,
	}
}

func newTestEnv() (*Service, *fakeBookingRepo, *capturingPublisher) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{}}
	publisher := &capturingPublisher{}
	return NewService(repo, publisher, nopLogger{}), repo, publisher
}

func TestGetByID(t *testing.T) {
	svc, repo, _ := newTestEnv()
	repo.bookings["bkg-1"] = seedBooking("bkg-1",
		time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC), domain.StatusPending)

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), "bkg-1")
		require.NoError(t, err)
		assert.Equal(t, "bkg-1", resp.ID)
		assert.Equal(t, "2025-11-24T10:00:00Z", resp.StartTime)
		assert.Equal(t, "2025-11-24T10:45:00Z", resp.EndTime)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestList_DayWindow(t *testing.T) {
	svc, repo, _ := newTestEnv()
	repo.bookings["bkg-1"] = seedBooking("bkg-1",
		time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC), domain.StatusPending)
	repo.bookings["bkg-2"] = seedBooking("bkg-2",
		time.Date(2025, 11, 24, 23, 30, 0, 0, time.UTC), domain.StatusConfirmed)
	repo.bookings["bkg-3"] = seedBooking("bkg-3",
		time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), domain.StatusPending)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Date: ptr.Ptr("2025-11-24"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2, "day window is half-open, midnight of the next day excluded")

	// Фильтр передан в репозиторий дневным окном [00:00, 00:00+24h)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate)
}

func TestList_InvalidFilters(t *testing.T) {
	svc, _, _ := newTestEnv()

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Date: ptr.Ptr("24-11-2025"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Status: ptr.Ptr("unknown"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	start := time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC)

	t.Run("canonical status", func(t *testing.T) {
		svc, repo, publisher := newTestEnv()
		repo.bookings["bkg-1"] = seedBooking("bkg-1", start, domain.StatusPending)

		resp, err := svc.UpdateStatus(context.Background(), "bkg-1",
			&models.UpdateStatusRequest{Status: "confirmed"})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, []string{"booking.status_changed"}, publisher.keys)
	})

	t.Run("synonym SELESAI maps to completed", func(t *testing.T) {
		svc, repo, _ := newTestEnv()
		repo.bookings["bkg-1"] = seedBooking("bkg-1", start, domain.StatusConfirmed)

		resp, err := svc.UpdateStatus(context.Background(), "bkg-1",
			&models.UpdateStatusRequest{Status: "SELESAI"})

		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("same status publishes nothing", func(t *testing.T) {
		svc, repo, publisher := newTestEnv()
		repo.bookings["bkg-1"] = seedBooking("bkg-1", start, domain.StatusPending)

		_, err := svc.UpdateStatus(context.Background(), "bkg-1",
			&models.UpdateStatusRequest{Status: "pending"})

		require.NoError(t, err)
		assert.Empty(t, publisher.keys)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, repo, _ := newTestEnv()
		repo.bookings["bkg-1"] = seedBooking("bkg-1", start, domain.StatusPending)

		_, err := svc.UpdateStatus(context.Background(), "bkg-1",
			&models.UpdateStatusRequest{Status: "paused"})

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateStatus(context.Background(), "missing",
			&models.UpdateStatusRequest{Status: "confirmed"})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestEnv()
	repo.bookings["bkg-1"] = seedBooking("bkg-1",
		time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC), domain.StatusCompleted)

	require.NoError(t, svc.Delete(context.Background(), "bkg-1"))
	assert.Empty(t, repo.bookings)

	assert.ErrorIs(t, svc.Delete(context.Background(), "bkg-1"), ErrBookingNotFound)
}
