package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// PolicyRepository источник политики площадки
type PolicyRepository interface {
	GetPolicy(ctx context.Context) (*domain.FacilityPolicy, error)
	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]domain.BlockedDate, error)
}

// BookingRepository источник подтвержденных бронирований
type BookingRepository interface {
	ListConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}
