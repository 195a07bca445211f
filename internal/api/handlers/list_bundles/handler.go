package list_bundles

import (
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
)

type Handler struct {
	service    CatalogService
	onlyActive bool
	logger     Logger
}

// NewHandler публичный список, только активные
func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service:    service,
		onlyActive: true,
		logger:     logger,
	}
}

// NewAdminHandler список для администратора, включая выключенные
func NewAdminHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bundles, GET /api/v1/admin/bundles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBundles(r.Context(), h.onlyActive)
	if err != nil {
		h.logger.Error("GET /bundles - Failed to list bundles: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
