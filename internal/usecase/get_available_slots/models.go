package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на получение расписания ресурса
type Request struct {
	Resource domain.ResourceRef
	Date     time.Time // Дата (используются год, месяц, день)
}

// Response расписание ресурса на день
type Response struct {
	Resource *domain.Resource
	Schedule availability.Schedule
}
