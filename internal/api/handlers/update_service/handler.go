package update_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barberx/BarberX-BookingService/internal/api/handlers"
	"github.com/barberx/BarberX-BookingService/internal/service/catalog"
	"github.com/barberx/BarberX-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidService     = "invalid service data"
	msgServiceNotFound    = "service not found"
	msgDuplicateName      = "service name already exists"
)

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

// Handle PUT /api/v1/admin/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/services/{id} - Invalid service data: service_id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /admin/services/{id} - Service not found: service_id=%s", id)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrDuplicateName):
			h.logger.Warn("PUT /admin/services/{id} - Duplicate name: service_id=%s", id)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateName)

		default:
			h.logger.Error("PUT /admin/services/{id} - Failed to update service: service_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
