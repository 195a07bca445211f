package facility

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// PolicyRepository интерфейс репозитория политики площадки
type PolicyRepository interface {
	GetPolicy(ctx context.Context) (*domain.FacilityPolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.FacilityPolicy) (*domain.FacilityPolicy, error)
	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
