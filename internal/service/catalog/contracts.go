package catalog

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListSpaces(ctx context.Context, onlyActive bool) ([]*domain.Space, error)
	ListBundles(ctx context.Context, onlyActive bool) ([]*domain.Bundle, error)
	GetSpace(ctx context.Context, id string) (*domain.Space, error)
	GetBundle(ctx context.Context, id string) (*domain.Bundle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
