package notification

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
)

// Ключи маршрутизации сообщений
const (
	KeyConfirmation = "booking.confirmation"
	KeyReminder     = "booking.reminder"
)

// Publisher публикация сообщений в брокер (*mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key, messageID string, v any) error
}

// UserClient получение профиля получателя
type UserClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID string) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message сообщение для почтового сервиса
type Message struct {
	Type          string  `json:"type"`
	BookingID     int64   `json:"booking_id"`
	UserID        string  `json:"user_id"`
	Email         string  `json:"email,omitempty"`
	Name          string  `json:"name,omitempty"`
	ResourceKind  string  `json:"resource_kind"`
	ResourceID    string  `json:"resource_id"`
	Date          string  `json:"date"`       // YYYY-MM-DD, время площадки
	StartTime     string  `json:"start_time"` // HH:MM, время площадки
	EndTime       string  `json:"end_time"`
	DurationHours int     `json:"duration_hours"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
}
