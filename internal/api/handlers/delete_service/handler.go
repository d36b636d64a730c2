package delete_service

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

// Handle DELETE /api/v1/admin/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("DELETE /admin/services/{id} - Service not found: service_id=%s", id)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("DELETE /admin/services/{id} - Failed to delete service: service_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%s", id)
	handlers.RespondNoContent(w)
}
