package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	createBooking "github.com/barberx/BarberX-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid startTime, expected RFC 3339 timestamp"
	msgMissingFields      = "customerName, customerPhone, serviceId and startTime are required"
	msgServiceNotFound    = "service not found"
	msgTimeInPast         = "booking time cannot be in the past"
	msgSlotConflict       = "the selected time slot is already booked"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createBooking.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Slot conflict: service_id=%s, start=%s",
				req.ServiceID, req.StartTime)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Message:      msgSlotConflict,
				ConflictTime: conflictErr.ConflictingStart.Format(time.RFC3339),
			})

		case errors.Is(err, createBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings - Missing fields")
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTimeInPast):
			h.logger.Warn("POST /bookings - Time in past: start=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgTimeInPast)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%s, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, service_id=%s",
		result.ID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
