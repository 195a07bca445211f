package domain

import (
	"math"
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending       BookingStatus = "pending"
	StatusConfirmed     BookingStatus = "confirmed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusCompleted     BookingStatus = "completed"
	StatusExpired       BookingStatus = "expired"
	StatusPaymentFailed BookingStatus = "payment_failed"
)

// IsValid проверяет, что статус известен
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal true для статусов, из которых нет переходов
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// transitions допустимые переходы статусов
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:       {StatusConfirmed, StatusExpired, StatusPaymentFailed, StatusCancelled},
	StatusConfirmed:     {StatusCancelled, StatusCompleted, StatusPaymentFailed},
	StatusPaymentFailed: {StatusConfirmed, StatusCancelled},
	StatusCancelled:     nil,
	StatusCompleted:     nil,
	StatusExpired:       nil,
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
	PaymentComp PaymentMethod = "comp"
)

// IsValid проверяет, что способ оплаты известен
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCard || m == PaymentCash || m == PaymentComp
}

// Booking бронирование ресурса
type Booking struct {
	ID     int64
	UserID string

	// Ровно одно из полей заполнено
	SpaceID  *string
	BundleID *string

	// Помещения, фактически занятые бронированием
	ReservedSpaceIDs []string

	StartTime     time.Time // UTC
	EndTime       time.Time // UTC
	DurationHours int

	HourlyRate  float64
	TotalAmount float64

	Status          BookingStatus
	PaymentMethod   PaymentMethod
	PaymentIntentID *string
	ReminderSent    bool

	CancelledAt *time.Time
	CancelledBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resource возвращает ссылку на забронированный ресурс
func (b *Booking) Resource() ResourceRef {
	if b.BundleID != nil {
		return ResourceRef{Kind: ResourceBundle, ID: *b.BundleID}
	}
	if b.SpaceID != nil {
		return ResourceRef{Kind: ResourceSpace, ID: *b.SpaceID}
	}
	return ResourceRef{}
}

// HasSingleResource проверяет, что указан ровно один ресурс
func (b *Booking) HasSingleResource() bool {
	return (b.SpaceID == nil) != (b.BundleID == nil)
}

// CanTransitionTo проверяет допустимость перехода в статус next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, s := range transitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsConfirmed true, если бронирование учитывается при поиске конфликтов
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Overlaps проверяет пересечение полуинтервалов [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// CalculateTotal стоимость бронирования с округлением до центов
func CalculateTotal(hourlyRate float64, hours int) float64 {
	return math.Round(hourlyRate*float64(hours)*100) / 100
}

// StatusesFrom возвращает статусы, из которых разрешен переход в next
func StatusesFrom(next BookingStatus) []BookingStatus {
	var from []BookingStatus
	for _, s := range orderedStatuses {
		for _, t := range transitions[s] {
			if t == next {
				from = append(from, s)
			}
		}
	}
	return from
}

var orderedStatuses = []BookingStatus{
	StatusPending, StatusConfirmed, StatusPaymentFailed,
	StatusCancelled, StatusCompleted, StatusExpired,
}

// BookingsFilter фильтр для административного списка бронирований
type BookingsFilter struct {
	UserID   *string        // Фильтр по пользователю (опционально)
	From     *time.Time     // Начало периода по start_time (включительно)
	To       *time.Time     // Конец периода по start_time (не включительно)
	Status   *BookingStatus // Фильтр по статусу
	Resource *ResourceRef   // Фильтр по ресурсу
	Limit    uint64
	Offset   uint64
}
