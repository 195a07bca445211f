package list_bundles

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/catalog/models"
)

type CatalogService interface {
	ListBundles(ctx context.Context, onlyActive bool) (*models.BundleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
