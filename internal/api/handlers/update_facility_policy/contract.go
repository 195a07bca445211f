package update_facility_policy

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility/models"
)

type FacilityService interface {
	UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
