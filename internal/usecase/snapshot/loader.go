package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
)

// ErrLoad возвращается, когда состояние дня не удалось прочитать
var ErrLoad = errors.New("snapshot: failed to load day state")

// Loader собирает состояние дня для движка доступности.
// Чтение (проверка слота, расписание) и запись (создание, подтверждение оплаты)
// используют один и тот же загрузчик.
type Loader struct {
	policies PolicyRepository
	bookings BookingRepository
	loc      *time.Location
}

// NewLoader создает загрузчик для часового пояса площадки
func NewLoader(policies PolicyRepository, bookings BookingRepository, loc *time.Location) *Loader {
	if loc == nil {
		loc = time.UTC
	}
	return &Loader{policies: policies, bookings: bookings, loc: loc}
}

// Load читает политику, блокировки даты и подтвержденные бронирования календарного дня.
// Внутри транзакции бронирования дня блокируются репозиторием (FOR UPDATE).
func (l *Loader) Load(ctx context.Context, date time.Time) (availability.Snapshot, error) {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, l.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	policy, err := l.policies.GetPolicy(ctx)
	switch {
	case errors.Is(err, facilityRepo.ErrPolicyNotFound):
		policy = nil
	case err != nil:
		return availability.Snapshot{}, fmt.Errorf("%w: policy: %v", ErrLoad, err)
	}

	snap := availability.Snapshot{Policy: domain.DefaultFacilityPolicy()}
	if policy != nil {
		snap.Policy = *policy
	}

	snap.BlockedDates, err = l.policies.ListBlockedDates(ctx, &dayStart, &dayStart)
	if err != nil {
		return availability.Snapshot{}, fmt.Errorf("%w: blocked dates: %v", ErrLoad, err)
	}

	snap.Bookings, err = l.bookings.ListConfirmedInRange(ctx, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return availability.Snapshot{}, fmt.Errorf("%w: bookings: %v", ErrLoad, err)
	}

	return snap, nil
}
