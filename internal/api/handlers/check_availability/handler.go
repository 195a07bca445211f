package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-FacilityBooking/internal/usecase/check_slot"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

const (
	msgInvalidResource  = "некорректный тип или ID ресурса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration  = "некорректная длительность"
	msgResourceNotFound = "помещение или набор не найдены"
	msgResourceInactive = "ресурс недоступен для бронирования"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{kind}/{id}/availability
// Query params: date (YYYY-MM-DD), time (HH:MM), duration (часы, по умолчанию 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	ref, err := handlers.ParseResourceRef(vars["kind"], vars["id"])
	if err != nil {
		h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid resource: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	start, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration := 1
	if raw := query.Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &checkSlot.Request{
		Resource:      ref,
		Date:          date,
		StartTime:     start,
		DurationHours: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, checkSlot.ErrResourceInactive):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgResourceInactive)

		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /resources/{kind}/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)

		default:
			h.logger.Error("GET /resources/{kind}/{id}/availability - Failed: %s=%s, error=%v", ref.Kind, ref.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
