package payment

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректных параметрах платежа
	ErrInvalidRequest = errors.New("payment: invalid charge request")

	// ErrDeclined возвращается, когда процессор отклонил запрос
	ErrDeclined = errors.New("payment: charge request rejected by processor")

	// ErrUnavailable возвращается при сетевых ошибках после повторной попытки
	ErrUnavailable = errors.New("payment: processor unavailable")

	// ErrDisabled возвращается, когда оплата картой не настроена
	ErrDisabled = errors.New("payment: card payments are disabled")
)
