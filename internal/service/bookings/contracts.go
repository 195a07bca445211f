package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, from []domain.BookingStatus, cancelledBy string) (*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	Delete(ctx context.Context, id int64) error
}

// SnapshotLoader читает состояние дня для движка доступности
type SnapshotLoader interface {
	Load(ctx context.Context, date time.Time) (availability.Snapshot, error)
}

// PaymentGateway интерфейс процессора платежей
type PaymentGateway interface {
	CreateCharge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error)
}

// Notifier отправка подтверждения бронирования
type Notifier interface {
	SendConfirmation(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
