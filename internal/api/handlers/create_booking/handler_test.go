package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/barberx/BarberX-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func validBody() CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		ServiceID:     "svc-1",
		StartTime:     "2025-11-24T10:00:00Z",
	}
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              "bkg-1",
		CustomerName:    "Budi Santoso",
		CustomerPhone:   "081234567890",
		ServiceID:       "svc-1",
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		Status:          "pending",
		ServiceName:     "Beard Trim",
		ServicePrice:    30000,
	}}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bkg-1", resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-11-24T10:30:00Z", resp.EndTime)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, start, uc.gotReq.StartTime)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.ConflictError{
		ConflictingStart: time.Date(2025, 11, 24, 10, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody())

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-11-24T10:00:00Z", resp.ConflictTime)
	assert.NotEmpty(t, resp.Message)
}

func TestHandle_BadRequests(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		NewHandler(&fakeUseCase{}, nopLogger{}).Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid start time", func(t *testing.T) {
		body := validBody()
		body.StartTime = "2025-11-24 10:00"

		rec := doRequest(t, &fakeUseCase{}, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrMissingFields}, validBody())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("time in past", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrTimeInPast}, validBody())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandle_ServiceNotFound(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{err: createBooking.ErrServiceNotFound}, validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{err: createBooking.ErrInternal}, validBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
