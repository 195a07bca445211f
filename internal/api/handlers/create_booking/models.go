package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-FacilityBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID        *string `json:"userId,omitempty"` // Только для администратора: бронирование от имени клиента
	SpaceID       *string `json:"spaceId,omitempty"`
	BundleID      *string `json:"bundleId,omitempty"`
	Date          string  `json:"date" validate:"required"`      // "2025-10-15"
	StartTime     string  `json:"startTime" validate:"required"` // "10:00"
	DurationHours int     `json:"durationHours" validate:"required,min=1"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=card cash comp"`
	CardToken     string  `json:"cardToken,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking      *bookingModels.BookingResponse `json:"booking"`
	ChargeID     *string                        `json:"chargeId,omitempty"`
	PaymentError *string                        `json:"paymentError,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string, isAdmin bool) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	if isAdmin && r.UserID != nil && *r.UserID != "" {
		userID = *r.UserID
	}

	return &createBooking.Request{
		UserID:        userID,
		IsAdmin:       isAdmin,
		SpaceID:       r.SpaceID,
		BundleID:      r.BundleID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		CardToken:     r.CardToken,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:      bookingModels.FromDomainBooking(resp.Booking, loc),
		ChargeID:     resp.ChargeID,
		PaymentError: resp.PaymentError,
	}
}
