package send_reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Result итог прохода
type Result struct {
	Candidates int
	Sent       int
	Skipped    int // Флаг уже выставлен другим обработчиком
	Failed     int
}

// UseCase рассылка напоминаний за сутки до начала
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отправляет напоминания по подтвержденным бронированиям со стартом в [now+23h, now+24h].
// Флаг выставляется до отправки: при конкурентном запуске напоминание уходит не более одного раза.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	from := now.Add(domain.ReminderWindowStart)
	to := now.Add(domain.ReminderWindowEnd)

	candidates, err := uc.bookingRepo.ListReminderCandidates(ctx, from, to)
	if err != nil {
		uc.logger.Error("SendReminders: failed to list candidates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	result := &Result{Candidates: len(candidates)}
	for _, booking := range candidates {
		if ctx.Err() != nil {
			break
		}

		marked, err := uc.bookingRepo.MarkReminderSent(ctx, booking.ID)
		if err != nil {
			uc.logger.Error("SendReminders: failed to mark booking id=%d: %v", booking.ID, err)
			result.Failed++
			continue
		}
		if !marked {
			result.Skipped++
			continue
		}

		if err := uc.notifier.SendReminder(ctx, booking); err != nil {
			uc.logger.Error("SendReminders: reminder for booking id=%d lost: %v", booking.ID, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	if result.Candidates > 0 {
		uc.logger.Info("SendReminders: candidates=%d sent=%d skipped=%d failed=%d",
			result.Candidates, result.Sent, result.Skipped, result.Failed)
	}
	return result, nil
}
