package get_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/catalog"
)

const msgServiceNotFound = "service not found"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%s", id)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("GET /services/{id} - Failed to get service: service_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
