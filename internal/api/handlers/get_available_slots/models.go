package get_available_slots

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
)

// SlotResponse стартовое время и допустимые длительности
type SlotResponse struct {
	StartTime string `json:"startTime"`
	Durations []int  `json:"durations"`
	Reason    string `json:"reason,omitempty"`
}

// ScheduleResponse расписание ресурса на день
type ScheduleResponse struct {
	ResourceKind string         `json:"resourceKind"`
	ResourceID   string         `json:"resourceId"`
	ResourceName string         `json:"resourceName"`
	HourlyRate   float64        `json:"hourlyRate"`
	Date         string         `json:"date"`
	Reason       string         `json:"reason,omitempty"`  // Причина, по которой день закрыт целиком
	Message      string         `json:"message,omitempty"` // Пояснение для клиента
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *ScheduleResponse {
	out := &ScheduleResponse{
		ResourceKind: string(resp.Resource.Kind),
		ResourceID:   resp.Resource.ID,
		ResourceName: resp.Resource.Name,
		HourlyRate:   resp.Resource.HourlyRate,
		Date:         resp.Schedule.Date.Format(domain.DateFormat),
		Reason:       string(resp.Schedule.Reason),
		Message:      resp.Schedule.Reason.Message(),
		Slots:        make([]SlotResponse, 0, len(resp.Schedule.Slots)),
	}

	for _, slot := range resp.Schedule.Slots {
		durations := slot.Durations
		if durations == nil {
			durations = []int{}
		}
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			Durations: durations,
			Reason:    string(slot.Reason),
		})
	}

	return out
}
