package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	serviceRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
)

// Фейки коллабораторов

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int
	listErr  error
	createErr error
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	r.nextID++
	b.ID = fmt.Sprintf("bkg-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *fakeBookingRepo) ListActiveStartingBefore(_ context.Context, before time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.IsActive() && b.StartTime.Before(before) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	services map[string]*domain.Service
}

func (c *fakeCatalog) GetByID(_ context.Context, id string) (*domain.Service, error) {
	if svc, ok := c.services[id]; ok {
		return svc, nil
	}
	return nil, serviceRepo.ErrServiceNotFound
}

// fakeTxManager сериализует транзакции мьютексом - модель
// single-writer дисциплины production менеджера
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time { return p.now }

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение тестов

var testNow = time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)

// at возвращает момент времени в тестовый день: at(10, 30) = 10:30 UTC
func at(hour, minute int) time.Time {
	return time.Date(2025, 11, 24, hour, minute, 0, 0, time.UTC)
}

func newTestEnv() (*UseCase, *fakeBookingRepo, *fakePublisher) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalog{services: map[string]*domain.Service{
		"svc-haircut": {ID: "svc-haircut", Name: "Haircut & Wash", Price: 50000, Duration: 45},
		"svc-beard":   {ID: "svc-beard", Name: "Beard Trim", Price: 30000, Duration: 30},
		"svc-cream":   {ID: "svc-cream", Name: "Hair Treatment (Creambath)", Price: 75000, Duration: 60},
	}}
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, catalog, &fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}

	return uc, repo, publisher
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		ServiceID:     "svc-beard",
		StartTime:     at(10, 0),
	}
}

// assertNoOverlaps проверяет инвариант: окна любых двух активных
// бронирований не пересекаются
func assertNoOverlaps(t *testing.T, bookings []*domain.Booking) {
	t.Helper()
	for i, b1 := range bookings {
		for j, b2 := range bookings {
			if i >= j || !b1.IsActive() || !b2.IsActive() {
				continue
			}
			assert.Falsef(t, b1.Overlaps(b2.StartTime, b2.DurationMinutes),
				"active bookings %s [%s,%s) and %s [%s,%s) overlap",
				b1.ID, b1.StartTime, b1.End(), b2.ID, b2.StartTime, b2.End())
		}
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	uc, repo, publisher := newTestEnv()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Beard Trim", resp.ServiceName)
	assert.Equal(t, int64(30000), resp.ServicePrice)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, at(10, 0), resp.StartTime)
	assert.Equal(t, at(10, 30), resp.EndTime)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, domain.StatusPending, repo.bookings[0].Status)
	assert.Equal(t, []string{"booking.created"}, publisher.keys)
}

func TestExecute_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty customer name", func(r *Request) { r.CustomerName = "" }},
		{"blank customer name", func(r *Request) { r.CustomerName = "   " }},
		{"empty phone", func(r *Request) { r.CustomerPhone = "" }},
		{"empty service id", func(r *Request) { r.ServiceID = "" }},
		{"zero start time", func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, publisher := newTestEnv()

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Empty(t, repo.bookings, "rejection must not create rows")
			assert.Empty(t, publisher.keys)
		})
	}
}

func TestExecute_UnknownService(t *testing.T) {
	uc, repo, _ := newTestEnv()

	req := validRequest()
	req.ServiceID = "svc-nonexistent"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Empty(t, repo.bookings)
}

func TestExecute_TimeInPast(t *testing.T) {
	uc, repo, _ := newTestEnv()

	req := validRequest()
	req.StartTime = testNow.Add(-time.Minute)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTimeInPast)
	assert.Empty(t, repo.bookings)
}

func TestExecute_StartExactlyNowAccepted(t *testing.T) {
	uc, _, _ := newTestEnv()

	req := validRequest()
	req.StartTime = testNow

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err, "start time equal to now is not in the past")
}

func TestExecute_OverlapRejected(t *testing.T) {
	uc, repo, publisher := newTestEnv()

	// Существующее бронирование 10:00-10:45 (услуга 45 минут)
	first := validRequest()
	first.ServiceID = "svc-haircut"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Новый запрос на 10:30 услугой 30 минут пересекается
	second := validRequest()
	second.ServiceID = "svc-beard"
	second.StartTime = at(10, 30)

	_, err = uc.Execute(context.Background(), second)

	require.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, at(10, 0), conflictErr.ConflictingStart,
		"conflict must report the existing booking's start time")

	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, []string{"booking.created"}, publisher.keys)
}

func TestExecute_RejectionIsIdempotent(t *testing.T) {
	uc, repo, _ := newTestEnv()

	first := validRequest()
	first.ServiceID = "svc-haircut"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	conflicting := validRequest()
	conflicting.StartTime = at(10, 30)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), conflicting)
		assert.ErrorIs(t, err, ErrSlotConflict, "attempt %d", i+1)
	}

	assert.Len(t, repo.bookings, 1, "conflicting requests must not create rows")
}

func TestExecute_TouchingEndpointsAccepted(t *testing.T) {
	t.Run("new starts exactly at existing end", func(t *testing.T) {
		uc, repo, _ := newTestEnv()

		// 10:00-10:30
		first := validRequest()
		_, err := uc.Execute(context.Background(), first)
		require.NoError(t, err)

		// 10:30-11:30, окно начинается ровно в конце существующего
		second := validRequest()
		second.ServiceID = "svc-cream"
		second.StartTime = at(10, 30)

		_, err = uc.Execute(context.Background(), second)

		require.NoError(t, err)
		assert.Len(t, repo.bookings, 2)
		assertNoOverlaps(t, repo.bookings)
	})

	t.Run("new ends exactly at existing start", func(t *testing.T) {
		uc, repo, _ := newTestEnv()

		// 10:30-11:00
		first := validRequest()
		first.StartTime = at(10, 30)
		_, err := uc.Execute(context.Background(), first)
		require.NoError(t, err)

		// 10:00-10:30, окно заканчивается ровно в начале существующего
		second := validRequest()
		second.StartTime = at(10, 0)

		_, err = uc.Execute(context.Background(), second)

		require.NoError(t, err)
		assert.Len(t, repo.bookings, 2)
		assertNoOverlaps(t, repo.bookings)
	})
}

func TestExecute_ConflictUsesExistingBookingDuration(t *testing.T) {
	uc, repo, _ := newTestEnv()

	// Окно существующего бронирования считается по его собственной
	// длительности (60 минут), а не по длительности новой услуги
	first := validRequest()
	first.ServiceID = "svc-cream" // 60 минут: 10:00-11:00
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.ServiceID = "svc-beard" // 30 минут
	second.StartTime = at(10, 45)  // внутри чужого окна

	_, err = uc.Execute(context.Background(), second)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_TerminalBookingFreesSlot(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, repo, _ := newTestEnv()

			first := validRequest()
			_, err := uc.Execute(context.Background(), first)
			require.NoError(t, err)

			// Переводим бронирование в терминальный статус - слот
			// сразу доступен повторно
			repo.bookings[0].Status = status

			same := validRequest()
			_, err = uc.Execute(context.Background(), same)

			require.NoError(t, err)
			assert.Len(t, repo.bookings, 2)
			assertNoOverlaps(t, repo.bookings)
		})
	}
}

func TestExecute_StoreFailureIsInternal(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		uc, repo, _ := newTestEnv()
		repo.listErr = errors.New("connection refused")

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("insert fails", func(t *testing.T) {
		uc, repo, _ := newTestEnv()
		repo.createErr = errors.New("connection refused")

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_ConcurrentIdenticalSlotRequests(t *testing.T) {
	uc, repo, _ := newTestEnv()

	const workers = 2

	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.CustomerName = fmt.Sprintf("Customer %d", i)
			_, results[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one request must win the slot")
	assert.Equal(t, 1, conflicted, "the loser must observe a conflict")
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_InvariantHeldAfterMixedOperations(t *testing.T) {
	uc, repo, _ := newTestEnv()

	requests := []struct {
		service string
		start   time.Time
	}{
		{"svc-haircut", at(10, 0)},  // 10:00-10:45 ok
		{"svc-beard", at(10, 45)},   // 10:45-11:15 ok (касание)
		{"svc-beard", at(11, 0)},    // пересекается с 10:45-11:15
		{"svc-cream", at(12, 0)},    // 12:00-13:00 ok
		{"svc-haircut", at(12, 30)}, // пересекается с 12:00-13:00
		{"svc-beard", at(13, 0)},    // 13:00-13:30 ok (касание)
	}

	for _, r := range requests {
		req := validRequest()
		req.ServiceID = r.service
		req.StartTime = r.start
		_, _ = uc.Execute(context.Background(), req)
	}

	assert.Len(t, repo.bookings, 4)
	assertNoOverlaps(t, repo.bookings)
}

func TestExecute_PublisherFailureDoesNotFailRequest(t *testing.T) {
	uc, repo, _ := newTestEnv()
	uc.publisher = failingPublisher{}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repo.bookings, 1)
}

type failingPublisher struct{}

func (failingPublisher) PublishJSON(context.Context, string, any) error {
	return errors.New("broker unavailable")
}
