package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings/models"
)

const msgInvalidFilter = "invalid filter parameters"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
//
// Query параметры:
//   - date: фильтр по дню, "2025-11-24"
//   - status: фильтр по статусу
//   - includeInactive: включить завершённые и отменённые
//   - limit: максимальное число записей
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	query := r.URL.Query()
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("includeInactive"); v != "" {
		req.IncludeInactive, _ = strconv.ParseBool(v)
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid limit: %s", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
