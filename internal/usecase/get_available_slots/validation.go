package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Resource.Kind.IsValid() {
		return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.Resource.Kind)
	}

	if req.Resource.ID == "" {
		return fmt.Errorf("%w: resource id is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
