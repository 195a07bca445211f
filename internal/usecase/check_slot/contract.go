package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// ResourceProvider разрешает ссылку на ресурс
type ResourceProvider interface {
	GetResource(ctx context.Context, ref domain.ResourceRef) (*domain.Resource, error)
}

// SnapshotLoader читает состояние дня для движка доступности
type SnapshotLoader interface {
	Load(ctx context.Context, date time.Time) (availability.Snapshot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
