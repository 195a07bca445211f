package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if (req.SpaceID == nil) == (req.BundleID == nil) {
		return fmt.Errorf("%w: exactly one of spaceId or bundleId is required", ErrInvalidInput)
	}
	if (req.SpaceID != nil && *req.SpaceID == "") || (req.BundleID != nil && *req.BundleID == "") {
		return fmt.Errorf("%w: resource id must not be empty", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !domain.IsAllowedDuration(req.DurationHours) {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}

	return validatePayment(req)
}

// validatePayment проверяет способ оплаты и права на него
func validatePayment(req *Request) error {
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.PaymentMethod == domain.PaymentCard {
		if req.CardToken == "" {
			return fmt.Errorf("%w: cardToken is required for card payment", ErrInvalidInput)
		}
		return nil
	}

	if !req.IsAdmin {
		return fmt.Errorf("%w: payment method %q is available to staff only", ErrInvalidInput, req.PaymentMethod)
	}
	return nil
}
