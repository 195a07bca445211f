package check_availability

import checkSlot "github.com/m04kA/SMC-FacilityBooking/internal/usecase/check_slot"

// AvailabilityResponse решение по слоту
type AvailabilityResponse struct {
	Bookable    bool    `json:"bookable"`
	Reason      string  `json:"reason,omitempty"`
	Message     string  `json:"message,omitempty"`
	MaxDuration int     `json:"maxDuration"`
	TotalAmount float64 `json:"totalAmount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Bookable:    resp.Bookable,
		Reason:      string(resp.Reason),
		Message:     resp.Reason.Message(),
		MaxDuration: resp.MaxDuration,
		TotalAmount: resp.TotalAmount,
	}
}
