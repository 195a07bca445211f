package payment

import "errors"

var (
	// ErrMalformed возвращается для сообщений, которые нельзя разобрать
	ErrMalformed = errors.New("payment consumer: malformed message")

	// ErrUnknownKey возвращается для неизвестного ключа маршрутизации
	ErrUnknownKey = errors.New("payment consumer: unknown routing key")
)
