package list_spaces

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

// Handle GET /api/v1/spaces, GET /api/v1/admin/spaces
// В публичном списке неактивные помещения скрыты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpaces(r.Context(), h.onlyActive)
	if err != nil {
		h.logger.Error("GET /spaces - Failed to list spaces: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
