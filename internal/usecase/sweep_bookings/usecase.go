package sweep_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Result количество переведенных бронирований
type Result struct {
	Expired   int64
	Completed int64
}

// UseCase перевод просроченных pending в expired и прошедших confirmed в completed
type UseCase struct {
	bookingRepo    BookingRepository
	pendingTimeout time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// pendingTimeout <= 0 заменяется значением по умолчанию.
func NewUseCase(bookingRepo BookingRepository, pendingTimeout time.Duration, logger Logger) *UseCase {
	if pendingTimeout <= 0 {
		pendingTimeout = domain.DefaultPendingTimeoutMinutes * time.Minute
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		pendingTimeout: pendingTimeout,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет оба перевода; ошибка одного не отменяет другой.
// Обновления условные по статусу, повторный или конкурентный запуск безопасен.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	result := &Result{}

	var errs []error

	expired, err := uc.bookingRepo.ExpirePending(ctx, now.Add(-uc.pendingTimeout))
	if err != nil {
		uc.logger.Error("SweepBookings: expire pending failed: %v", err)
		errs = append(errs, err)
	}
	result.Expired = expired

	completed, err := uc.bookingRepo.CompletePast(ctx, now)
	if err != nil {
		uc.logger.Error("SweepBookings: complete past failed: %v", err)
		errs = append(errs, err)
	}
	result.Completed = completed

	if result.Expired > 0 || result.Completed > 0 {
		uc.logger.Info("SweepBookings: expired=%d completed=%d", result.Expired, result.Completed)
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("%w: %v", ErrInternal, errors.Join(errs...))
	}
	return result, nil
}
