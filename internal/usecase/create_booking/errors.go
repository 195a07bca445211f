package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
)

var (
	// ErrResourceNotFound возвращается, когда помещение или набор не найдены
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceInactive возвращается, когда ресурс выключен для бронирования
	ErrResourceInactive = errors.New("create_booking: resource is not available for booking")

	// ErrPolicyViolation возвращается, когда слот нарушает правила площадки
	ErrPolicyViolation = errors.New("create_booking: booking policy violation")

	// ErrSlotNotAvailable возвращается, когда слот занят подтвержденным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// PolicyError нарушение правил площадки с машиночитаемой причиной
type PolicyError struct {
	Reason availability.Reason
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPolicyViolation, e.Reason)
}

func (e *PolicyError) Unwrap() error {
	return ErrPolicyViolation
}
