package catalog

import "errors"

var (
	// ErrResourceNotFound возвращается, когда помещение или набор не найдены
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidInput возвращается при некорректной ссылке на ресурс
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
