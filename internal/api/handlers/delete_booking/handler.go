package delete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/bookings"
)

const msgBookingNotFound = "booking not found"

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

// Handle DELETE /api/v1/admin/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("DELETE /admin/bookings/{id} - Booking not found: booking_id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete booking: booking_id=%s, error=%v",
			id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%s", id)
	handlers.RespondNoContent(w)
}
