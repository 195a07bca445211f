package check_slot

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Request кандидат на бронирование без данных оплаты
type Request struct {
	Resource      domain.ResourceRef
	Date          time.Time
	StartTime     types.TimeString
	DurationHours int
}

// Response решение по слоту
type Response struct {
	Bookable    bool
	Reason      availability.Reason
	MaxDuration int // Максимальная длительность от StartTime, 0 если слот недоступен
	TotalAmount float64
}
