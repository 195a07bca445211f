package notification

import "context"

// LogPublisher пишет сообщения в лог вместо брокера, когда RabbitMQ выключен
type LogPublisher struct {
	Logger Logger
}

func (p LogPublisher) PublishJSON(_ context.Context, key, messageID string, v any) error {
	if m, ok := v.(*Message); ok {
		p.Logger.Info("Notification (not sent, broker disabled): key=%s, id=%s, booking_id=%d, user_id=%s",
			key, messageID, m.BookingID, m.UserID)
		return nil
	}
	p.Logger.Info("Notification (not sent, broker disabled): key=%s, id=%s", key, messageID)
	return nil
}
