package export_bookings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings/models"
)

const msgInvalidFilter = "invalid filter parameters"

var csvHeader = []string{
	"id", "customer_name", "customer_phone", "service_name",
	"start_time", "end_time", "duration_minutes", "price", "status",
}

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

// Handle GET /api/v1/admin/bookings/export
//
// Выгружает бронирования в CSV с теми же фильтрами, что и листинг
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{IncludeInactive: true}

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

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/bookings/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/bookings/export - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := "bookings.csv"
	if req.Date != nil {
		filename = fmt.Sprintf("bookings-%s.csv", *req.Date)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		h.logger.Error("GET /admin/bookings/export - Failed to write CSV header: %v", err)
		return
	}

	for _, b := range result.Bookings {
		record := []string{
			b.ID,
			b.CustomerName,
			b.CustomerPhone,
			b.ServiceName,
			b.StartTime,
			b.EndTime,
			strconv.Itoa(b.DurationMinutes),
			strconv.FormatInt(b.ServicePrice, 10),
			b.Status,
		}
		if err := cw.Write(record); err != nil {
			h.logger.Error("GET /admin/bookings/export - Failed to write CSV record: booking_id=%s, error=%v",
				b.ID, err)
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("GET /admin/bookings/export - Failed to flush CSV: %v", err)
		return
	}

	h.logger.Info("GET /admin/bookings/export - Exported %d bookings", len(result.Bookings))
}
