package add_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyBlocked     = "дата уже заблокирована"
)

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

// Handle POST /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}
	req.UserID, _ = middleware.GetUserID(r.Context())

	result, err := h.service.AddBlockedDate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, facility.ErrBlockedDateExists):
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, facility.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-dates - Invalid data: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("POST /admin/blocked-dates - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Date blocked: date=%s, by=%s", result.Date, result.CreatedBy)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
