package remove_blocked_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility"
)

const msgNotBlocked = "дата не заблокирована"

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

// Handle DELETE /api/v1/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.service.RemoveBlockedDate(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, facility.ErrBlockedDateNotFound):
			handlers.RespondNotFound(w, msgNotBlocked)

		case errors.Is(err, facility.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Invalid date: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked: date=%s", date)
	handlers.RespondNoContent(w)
}
