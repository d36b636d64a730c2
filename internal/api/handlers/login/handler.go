package login

import (
	"errors"
	"net/http"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/auth"
	"github.com/barberx/BarberX-BookingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "username and password are required"
	msgInvalidCredentials = "invalid username or password"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			h.logger.Warn("POST /auth/login - Missing fields")
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Login successful: username=%s", req.Username)
	handlers.RespondJSON(w, http.StatusOK, result)
}
