package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
)

const retryDelay = 200 * time.Millisecond

// Notifier отправляет подтверждения и напоминания через брокер
type Notifier struct {
	publisher Publisher
	users     UserClient
	loc       *time.Location
	logger    Logger
}

// NewNotifier создает отправителя уведомлений.
// users может быть nil, тогда сообщение уходит без контактов получателя.
func NewNotifier(publisher Publisher, users UserClient, loc *time.Location, logger Logger) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		publisher: publisher,
		users:     users,
		loc:       loc,
		logger:    logger,
	}
}

// SendConfirmation публикует подтверждение бронирования
func (n *Notifier) SendConfirmation(ctx context.Context, booking *domain.Booking) error {
	return n.send(ctx, KeyConfirmation, booking)
}

// SendReminder публикует напоминание о бронировании
func (n *Notifier) SendReminder(ctx context.Context, booking *domain.Booking) error {
	return n.send(ctx, KeyReminder, booking)
}

func (n *Notifier) send(ctx context.Context, key string, booking *domain.Booking) error {
	msg := n.buildMessage(ctx, key, booking)
	// Один ID на обе попытки, чтобы получатель мог отбросить дубль
	messageID := uuid.NewString()

	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		if err = n.publisher.PublishJSON(ctx, key, messageID, msg); err == nil {
			n.logger.Info("Notification: %s sent for booking id=%d", key, booking.ID)
			return nil
		}
		n.logger.Warn("Notification: %s for booking id=%d attempt=%d failed: %v", key, booking.ID, attempt, err)

		if attempt == 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrPublish, ctx.Err())
			case <-time.After(retryDelay):
			}
		}
	}

	n.logger.Error("Notification: %s for booking id=%d not delivered: %v", key, booking.ID, err)
	return fmt.Errorf("%w: %v", ErrPublish, err)
}

func (n *Notifier) buildMessage(ctx context.Context, key string, booking *domain.Booking) *Message {
	start := booking.StartTime.In(n.loc)
	end := booking.EndTime.In(n.loc)
	ref := booking.Resource()

	msg := &Message{
		Type:          key,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ResourceKind:  string(ref.Kind),
		ResourceID:    ref.ID,
		Date:          start.Format(domain.DateFormat),
		StartTime:     start.Format(domain.TimeFormat),
		EndTime:       end.Format(domain.TimeFormat),
		DurationHours: booking.DurationHours,
		TotalAmount:   booking.TotalAmount,
		PaymentMethod: string(booking.PaymentMethod),
	}

	if n.users == nil {
		return msg
	}

	user, err := n.users.GetUserWithGracefulDegradation(ctx, booking.UserID)
	if err != nil && !errors.Is(err, userservice.ErrServiceDegraded) {
		n.logger.Warn("Notification: profile for user=%s unavailable: %v", booking.UserID, err)
	}
	if user != nil {
		msg.Email = user.Email
		msg.Name = user.Name
	}
	return msg
}
