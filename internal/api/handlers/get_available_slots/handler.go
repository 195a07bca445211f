package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidResource  = "некорректный тип или ID ресурса"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound = "помещение или набор не найдены"
	msgResourceInactive = "ресурс недоступен для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{id}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ref, err := handlers.ParseResourceRef(vars["kind"], vars["id"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Invalid resource: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Resource: ref, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Not found: %s=%s", ref.Kind, ref.ID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrResourceInactive):
			h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Inactive: %s=%s", ref.Kind, ref.ID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgResourceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{kind}/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("GET /resources/{kind}/{id}/available-slots - Failed: %s=%s, date=%s, error=%v",
				ref.Kind, ref.ID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{kind}/{id}/available-slots - %s=%s, date=%s, slots=%d",
		ref.Kind, ref.ID, dateStr, len(result.Schedule.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
