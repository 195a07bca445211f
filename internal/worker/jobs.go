package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/sweep_bookings"
)

// Имена задач в метриках и логах
const (
	JobReminders = "send_reminders"
	JobSweep     = "sweep_bookings"
)

// RemindersJob задача рассылки напоминаний
func RemindersJob(uc *send_reminders.UseCase, interval time.Duration) Job {
	return Job{
		Name:     JobReminders,
		Interval: interval,
		Run: func(ctx context.Context) (int, error) {
			res, err := uc.Execute(ctx)
			if res == nil {
				return 0, err
			}
			return res.Sent, err
		},
	}
}

// SweepJob задача перевода просроченных и прошедших бронирований
func SweepJob(uc *sweep_bookings.UseCase, interval time.Duration) Job {
	return Job{
		Name:     JobSweep,
		Interval: interval,
		Run: func(ctx context.Context) (int, error) {
			res, err := uc.Execute(ctx)
			if res == nil {
				return 0, err
			}
			return int(res.Expired + res.Completed), err
		},
	}
}
