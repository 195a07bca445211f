package availability

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

type interval struct {
	start time.Time
	end   time.Time
}

func (i interval) overlaps(start, end time.Time) bool {
	return i.start.Before(end) && i.end.After(start)
}

// occupancy индекс подтвержденных бронирований по ID помещения.
// Бронирование набора попадает в индекс каждого его помещения.
type occupancy map[string][]interval

func newOccupancy(bookings []*domain.Booking) occupancy {
	occ := make(occupancy)
	for _, b := range bookings {
		if b == nil || !b.IsConfirmed() {
			continue
		}
		iv := interval{start: b.StartTime, end: b.EndTime}
		for _, spaceID := range b.ReservedSpaceIDs {
			occ[spaceID] = append(occ[spaceID], iv)
		}
	}
	return occ
}

// busy проверяет, занято ли хотя бы одно из помещений в [start, end)
func (o occupancy) busy(spaceIDs []string, start, end time.Time) bool {
	for _, id := range spaceIDs {
		for _, iv := range o[id] {
			if iv.overlaps(start, end) {
				return true
			}
		}
	}
	return false
}
