package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStatus      = "invalid booking status"
	msgBookingNotFound    = "booking not found"
)

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

// Handle PUT /api/v1/admin/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PUT /admin/bookings/{id}/status - Invalid status: booking_id=%s, status=%s",
				id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{id}/status - Booking not found: booking_id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("PUT /admin/bookings/{id}/status - Failed to update status: booking_id=%s, error=%v",
				id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id}/status - Status updated: booking_id=%s, status=%s",
		id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
