package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidResourceKind возвращается при некорректном типе ресурса
	ErrInvalidResourceKind = errors.New("invalid resource kind")
)

// Request модели

// Requester автор запроса
type Requester struct {
	UserID  string
	IsAdmin bool
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Requester
}

// RetryPaymentRequest запрос на повторную оплату картой
type RetryPaymentRequest struct {
	UserID    string `json:"-"`
	CardToken string `json:"cardToken" validate:"required"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос административного списка бронирований
type ListBookingsRequest struct {
	UserID       *string    // Фильтр по пользователю (опционально)
	From         *time.Time // Начало периода по времени старта (включительно)
	To           *time.Time // Конец периода по времени старта (не включительно)
	Status       *string    // Фильтр по статусу
	ResourceKind *string    // space | bundle, вместе с ResourceID
	ResourceID   *string
	Limit        uint64
	Offset       uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID: r.UserID,
		From:   r.From,
		To:     r.To,
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	if filter.Limit == 0 {
		filter.Limit = domain.DefaultListLimit
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.ResourceID != nil {
		kind := domain.ResourceSpace
		if r.ResourceKind != nil {
			kind = domain.ResourceKind(*r.ResourceKind)
		}
		if !kind.IsValid() {
			return filter, ErrInvalidResourceKind
		}
		filter.Resource = &domain.ResourceRef{Kind: kind, ID: *r.ResourceID}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64    `json:"id"`
	UserID           string   `json:"userId"`
	ResourceKind     string   `json:"resourceKind"`
	ResourceID       string   `json:"resourceId"`
	SpaceID          *string  `json:"spaceId,omitempty"`
	BundleID         *string  `json:"bundleId,omitempty"`
	ReservedSpaceIDs []string `json:"reservedSpaceIds"`

	Date          string    `json:"date"`      // "2025-10-15", время площадки
	StartTime     string    `json:"startTime"` // "10:00", время площадки
	EndTime       string    `json:"endTime"`
	StartsAt      time.Time `json:"startsAt"` // UTC
	EndsAt        time.Time `json:"endsAt"`
	DurationHours int       `json:"durationHours"`

	HourlyRate    float64 `json:"hourlyRate"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	ChargeID      *string `json:"chargeId,omitempty"`
	ReminderSent  bool    `json:"reminderSent"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancelledBy *string `json:"cancelledBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, локальное время в поясе loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)
	ref := b.Resource()

	resp := &BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		ResourceKind:     string(ref.Kind),
		ResourceID:       ref.ID,
		SpaceID:          b.SpaceID,
		BundleID:         b.BundleID,
		ReservedSpaceIDs: b.ReservedSpaceIDs,
		Date:             start.Format(domain.DateFormat),
		StartTime:        start.Format(domain.TimeFormat),
		EndTime:          end.Format(domain.TimeFormat),
		StartsAt:         b.StartTime.UTC(),
		EndsAt:           b.EndTime.UTC(),
		DurationHours:    b.DurationHours,
		HourlyRate:       b.HourlyRate,
		TotalAmount:      b.TotalAmount,
		Status:           string(b.Status),
		PaymentMethod:    string(b.PaymentMethod),
		ChargeID:         b.PaymentIntentID,
		ReminderSent:     b.ReminderSent,
		CancelledBy:      b.CancelledBy,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if resp.ReservedSpaceIDs == nil {
		resp.ReservedSpaceIDs = []string{}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
