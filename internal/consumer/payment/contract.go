package payment

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Ключи маршрутизации сигналов оплаты
const (
	KeyPaid   = "payment.paid"
	KeyFailed = "payment.failed"
)

// ResultApplier применяет результат платежа к бронированию
type ResultApplier interface {
	ApplyPaymentResult(ctx context.Context, bookingID int64, chargeID string, success bool) (*domain.Booking, error)
}

// Source источник доставок (*mq.Consumer)
type Source interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

// Metrics учет обработанных сообщений
type Metrics interface {
	ObserveJob(job string, items int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
