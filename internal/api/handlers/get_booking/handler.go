package get_booking

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

// Handle GET /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
