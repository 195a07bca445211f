package update_facility_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle PUT /api/v1/admin/facility/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/facility/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}
	req.UserID, _ = middleware.GetUserID(r.Context())

	result, err := h.service.UpdatePolicy(r.Context(), &req)
	if err != nil {
		if errors.Is(err, facility.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/facility/policy - Invalid data: %v", err)
			handlers.RespondBadRequest(w, handlers.MsgInvalidInput)
			return
		}
		h.logger.Error("PUT /admin/facility/policy - Failed to update policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/facility/policy - Policy updated by user_id=%s", req.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
