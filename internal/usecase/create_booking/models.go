package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        string               // Владелец бронирования
	IsAdmin       bool                 // Запрос от администратора
	SpaceID       *string              // Ровно одно из SpaceID / BundleID
	BundleID      *string
	Date          time.Time            // Дата бронирования (используются год, месяц, день)
	StartTime     types.TimeString     // Время начала, HH:MM по времени площадки
	DurationHours int                  // 1, 2 или 3
	PaymentMethod domain.PaymentMethod // card для клиентов, cash/comp только для администратора
	CardToken     string               // Токен карты (обязателен для card)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking      *domain.Booking
	ChargeID     *string // ID платежа у процессора
	PaymentError *string // Причина отказа процессора, если платеж не прошел
}

func (r *Request) resourceRef() domain.ResourceRef {
	if r.BundleID != nil {
		return domain.ResourceRef{Kind: domain.ResourceBundle, ID: *r.BundleID}
	}
	return domain.ResourceRef{Kind: domain.ResourceSpace, ID: *r.SpaceID}
}
