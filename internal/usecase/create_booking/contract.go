package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
}

// ResourceProvider разрешает ссылку на ресурс
type ResourceProvider interface {
	GetResource(ctx context.Context, ref domain.ResourceRef) (*domain.Resource, error)
}

// SnapshotLoader читает состояние дня для движка доступности
type SnapshotLoader interface {
	Load(ctx context.Context, date time.Time) (availability.Snapshot, error)
}

// PaymentGateway интерфейс процессора платежей
type PaymentGateway interface {
	CreateCharge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error)
}

// PaymentResultApplier применяет окончательный результат платежа к бронированию
type PaymentResultApplier interface {
	ApplyPaymentResult(ctx context.Context, bookingID int64, chargeID string, success bool) (*domain.Booking, error)
}

// Notifier отправка подтверждения бронирования
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
