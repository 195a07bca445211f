package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда статус бронирования не допускает отмены
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindow возвращается, когда до начала осталось 24 часа или меньше
	ErrCancellationWindow = errors.New("bookings can only be cancelled more than 24 hours before start")

	// ErrCannotRetryPayment возвращается, когда бронирование не ожидает повторной оплаты
	ErrCannotRetryPayment = errors.New("booking payment cannot be retried")

	// ErrPaymentDeclined возвращается, когда процессор отклонил платеж
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrPaymentUnavailable возвращается, когда процессор платежей недоступен
	ErrPaymentUnavailable = errors.New("payment processor unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
