package list_blocked_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility/models"
)

type FacilityService interface {
	ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
