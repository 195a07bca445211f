package list_spaces

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListSpaces(ctx context.Context, onlyActive bool) (*models.SpaceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
