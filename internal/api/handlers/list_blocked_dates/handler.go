package list_blocked_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/blocked-dates
// Query params: from, to (YYYY-MM-DD, включительно, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	for key, dst := range map[string]**time.Time{"from": &from, "to": &to} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		d, err := handlers.ParseDate(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		*dst = &d
	}

	result, err := h.service.ListBlockedDates(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, facility.ErrInvalidInput) {
			h.logger.Warn("GET /admin/blocked-dates - Invalid range: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)
			return
		}
		h.logger.Error("GET /admin/blocked-dates - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
