package sweep_bookings

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("sweep_bookings: internal error")
