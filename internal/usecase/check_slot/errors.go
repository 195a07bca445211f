package check_slot

import "errors"

var (
	// ErrResourceNotFound возвращается, когда помещение или набор не найдены
	ErrResourceNotFound = errors.New("check_slot: resource not found")

	// ErrResourceInactive возвращается, когда ресурс выключен для бронирования
	ErrResourceInactive = errors.New("check_slot: resource is not available for booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_slot: internal error")
)
