package payment

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/bookings"
)

const jobName = "payment_signal"

// Consumer применяет сигналы оплаты из брокера с ручным подтверждением
type Consumer struct {
	source  Source
	applier ResultApplier
	metrics Metrics
	logger  Logger
}

// NewConsumer создает потребителя сигналов оплаты; metrics может быть nil
func NewConsumer(source Source, applier ResultApplier, metrics Metrics, logger Logger) *Consumer {
	return &Consumer{
		source:  source,
		applier: applier,
		metrics: metrics,
		logger:  logger,
	}
}

// Run обрабатывает доставки до отмены ctx или закрытия канала
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("payment consumer: consume: %w", err)
	}

	c.logger.Info("PaymentConsumer: started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("PaymentConsumer: delivery channel closed")
				return nil
			}
			c.settle(d, c.handle(ctx, d.RoutingKey, d.Body))
		}
	}
}

// handle разбирает сигнал и применяет его к бронированию
func (c *Consumer) handle(ctx context.Context, key string, body []byte) error {
	var success bool
	switch key {
	case KeyPaid:
		success = true
	case KeyFailed:
		success = false
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	ev, err := decodeEvent(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	data := ev.payload()
	if data.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id is required", ErrMalformed)
	}

	if !success && (data.FailureCode != "" || data.FailureMessage != "") {
		c.logger.Warn("PaymentConsumer: booking id=%d charge=%s failed: %s %s",
			data.BookingID, data.ChargeID, data.FailureCode, data.FailureMessage)
	}

	_, err = c.applier.ApplyPaymentResult(ctx, int64(data.BookingID), data.ChargeID, success)
	return err
}

// settle подтверждает или возвращает сообщение в очередь.
// Неразбираемые сообщения и сигналы для удаленных бронирований отбрасываются,
// временные ошибки возвращаются в очередь один раз.
func (c *Consumer) settle(d amqp.Delivery, err error) {
	if c.metrics != nil {
		c.metrics.ObserveJob(jobName, 1, err)
	}

	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrMalformed), errors.Is(err, ErrUnknownKey):
		c.logger.Error("PaymentConsumer: drop message id=%s key=%s: %v", d.MessageId, d.RoutingKey, err)
		_ = d.Nack(false, false)
	case errors.Is(err, bookings.ErrBookingNotFound):
		c.logger.Warn("PaymentConsumer: booking for message id=%s not found, ack", d.MessageId)
		_ = d.Ack(false)
	case d.Redelivered:
		c.logger.Error("PaymentConsumer: message id=%s failed after redelivery, drop: %v", d.MessageId, err)
		_ = d.Nack(false, false)
	default:
		c.logger.Warn("PaymentConsumer: message id=%s failed, requeue: %v", d.MessageId, err)
		_ = d.Nack(false, true)
	}
}
