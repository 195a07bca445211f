package get_available_slots

import "errors"

var (
	// ErrResourceNotFound возвращается, когда помещение или набор не найдены
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceInactive возвращается, когда ресурс выключен для бронирования
	ErrResourceInactive = errors.New("resource is not available for booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
