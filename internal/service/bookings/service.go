package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/bookings/models"
)

// SystemActor автор отмен, выполненных сервисом без участия пользователя
const SystemActor = "system"

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	snapshots    SnapshotLoader
	engine       *availability.Engine
	payments     PaymentGateway
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	snapshots SnapshotLoader,
	engine *availability.Engine,
	payments PaymentGateway,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		snapshots:    snapshots,
		engine:       engine,
		payments:     payments,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, администратор любые.
func (s *Service) GetByID(ctx context.Context, id int64, requester models.Requester) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin && booking.UserID != requester.UserID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.engine.Location()), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.engine.Location()), nil
}

// List административный список бронирований с фильтрами по периоду, статусу и ресурсу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.engine.Location()), nil
}

// Cancel отменяет бронирование, запись сохраняется.
// Клиент отменяет только свое подтвержденное бронирование не позднее чем за 24 часа до начала.
// Администратор отменяет любое нетерминальное бронирование без ограничения по времени.
// Повторная отмена ничего не меняет.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s admin=%t", bookingID, req.UserID, req.IsAdmin)

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !req.IsAdmin && booking.UserID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if booking.Status == domain.StatusCancelled {
			result = booking
			return nil
		}

		if err := s.checkCancellable(booking, req.IsAdmin); err != nil {
			s.logger.Warn("Cancel: booking id=%d status=%s: %v", bookingID, booking.Status, err)
			return err
		}

		cancelled, err := s.bookingRepo.Cancel(txCtx, bookingID, []domain.BookingStatus{booking.Status}, req.UserID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusMismatch) {
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		result = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d is %s", bookingID, result.Status)
	return models.FromDomainBooking(result, s.engine.Location()), nil
}

func (s *Service) checkCancellable(booking *domain.Booking, isAdmin bool) error {
	if isAdmin {
		if !booking.CanTransitionTo(domain.StatusCancelled) {
			return ErrCannotCancel
		}
		return nil
	}

	if booking.Status != domain.StatusConfirmed {
		return ErrCannotCancel
	}
	if !s.timeProvider.Now().Before(cancellationDeadline(booking.StartTime)) {
		return ErrCancellationWindow
	}
	return nil
}

// ApplyPaymentResult применяет окончательный результат платежа.
// Успех подтверждает бронирование после повторной проверки конфликтов; если слот
// успели занять, бронирование отменяется и требуется ручной возврат средств.
// Сигналы для терминальных бронирований игнорируются.
func (s *Service) ApplyPaymentResult(ctx context.Context, bookingID int64, chargeID string, success bool) (*domain.Booking, error) {
	s.logger.Info("ApplyPaymentResult: booking id=%d charge=%s success=%t", bookingID, chargeID, success)

	if success {
		return s.confirmPaid(ctx, bookingID, chargeID)
	}
	return s.markPaymentFailed(ctx, bookingID, chargeID)
}

func (s *Service) confirmPaid(ctx context.Context, bookingID int64, chargeID string) (*domain.Booking, error) {
	var (
		result    *domain.Booking
		confirmed bool
		slotLost  bool
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		confirmed, slotLost = false, false

		booking, err := s.getBooking(txCtx, "ApplyPaymentResult", bookingID)
		if err != nil {
			return err
		}
		result = booking

		switch booking.Status {
		case domain.StatusPending, domain.StatusPaymentFailed:
		case domain.StatusExpired, domain.StatusCancelled:
			// Деньги списаны, а бронирования у клиента нет
			s.logger.Error("ApplyPaymentResult: success for booking id=%d in status %s; refund charge=%s manually",
				bookingID, booking.Status, chargeID)
			return nil
		default:
			s.logger.Warn("ApplyPaymentResult: ignoring success for booking id=%d in status %s", bookingID, booking.Status)
			return nil
		}

		if chargeID != "" && (booking.PaymentIntentID == nil || *booking.PaymentIntentID != chargeID) {
			if err := s.bookingRepo.SetPaymentIntent(txCtx, bookingID, chargeID); err != nil {
				return fmt.Errorf("%w: ApplyPaymentResult - save charge: %v", ErrInternal, err)
			}
		}

		snap, err := s.snapshots.Load(txCtx, booking.StartTime.In(s.engine.Location()))
		if err != nil {
			return fmt.Errorf("%w: ApplyPaymentResult - load day state: %v", ErrInternal, err)
		}

		from := []domain.BookingStatus{booking.Status}
		if s.engine.Conflicts(booking.ReservedSpaceIDs, booking.StartTime, booking.EndTime, snap) {
			result, err = s.bookingRepo.Cancel(txCtx, bookingID, from, SystemActor)
			if err != nil {
				return fmt.Errorf("%w: ApplyPaymentResult - cancel: %v", ErrInternal, err)
			}
			slotLost = true
			return nil
		}

		result, err = s.bookingRepo.TransitionStatus(txCtx, bookingID, from, domain.StatusConfirmed)
		if err != nil {
			return fmt.Errorf("%w: ApplyPaymentResult - confirm: %v", ErrInternal, err)
		}
		confirmed = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			s.logger.Error("ApplyPaymentResult: booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	if slotLost {
		s.logger.Error("ApplyPaymentResult: slot of booking id=%d was taken before payment, cancelled; refund charge=%s manually",
			bookingID, chargeID)
	}
	if confirmed {
		s.logger.Info("ApplyPaymentResult: booking id=%d confirmed", bookingID)
		if err := s.notifier.SendConfirmation(ctx, result); err != nil {
			s.logger.Error("ApplyPaymentResult: confirmation for booking id=%d failed: %v", bookingID, err)
		}
	}

	return result, nil
}

func (s *Service) markPaymentFailed(ctx context.Context, bookingID int64, chargeID string) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "ApplyPaymentResult", bookingID)
		if err != nil {
			return err
		}
		result = booking

		if !booking.CanTransitionTo(domain.StatusPaymentFailed) {
			s.logger.Warn("ApplyPaymentResult: ignoring failure for booking id=%d in status %s", bookingID, booking.Status)
			return nil
		}
		if booking.PaymentMethod != domain.PaymentCard {
			s.logger.Warn("ApplyPaymentResult: ignoring failure charge=%s for %s booking id=%d", chargeID, booking.PaymentMethod, bookingID)
			return nil
		}
		if !failureMatchesCharge(booking, chargeID) {
			s.logger.Warn("ApplyPaymentResult: ignoring failure of stale charge=%s for booking id=%d", chargeID, bookingID)
			return nil
		}

		result, err = s.bookingRepo.TransitionStatus(txCtx, bookingID, []domain.BookingStatus{booking.Status}, domain.StatusPaymentFailed)
		if err != nil {
			return fmt.Errorf("%w: ApplyPaymentResult - mark failed: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			s.logger.Error("ApplyPaymentResult: booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	return result, nil
}

// failureMatchesCharge отказ относится к текущему платежу бронирования.
// Подтвержденное бронирование снимается только отказом по его собственному списанию.
func failureMatchesCharge(booking *domain.Booking, chargeID string) bool {
	if booking.Status == domain.StatusConfirmed {
		return chargeID != "" && booking.PaymentIntentID != nil && *booking.PaymentIntentID == chargeID
	}
	// pending: списание могло еще не сохраниться
	return chargeID == "" || booking.PaymentIntentID == nil || *booking.PaymentIntentID == chargeID
}

// RetryPayment повторное списание по новой карте для бронирования в статусе payment_failed
func (s *Service) RetryPayment(ctx context.Context, bookingID int64, req *models.RetryPaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("RetryPayment: booking id=%d by user=%s", bookingID, req.UserID)

	if req.CardToken == "" {
		return nil, fmt.Errorf("%w: cardToken is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "RetryPayment", bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != req.UserID {
		s.logger.Warn("RetryPayment: access denied for user=%s to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}
	if booking.Status != domain.StatusPaymentFailed {
		return nil, fmt.Errorf("%w: status is %s", ErrCannotRetryPayment, booking.Status)
	}
	if !booking.StartTime.After(s.timeProvider.Now()) {
		return nil, fmt.Errorf("%w: booking has already started", ErrCannotRetryPayment)
	}

	charge, err := s.payments.CreateCharge(ctx, payment.ChargeRequest{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		CardToken: req.CardToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrDeclined), errors.Is(err, payment.ErrInvalidRequest):
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		default:
			s.logger.Error("RetryPayment: processor error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
		}
	}

	if err := s.bookingRepo.SetPaymentIntent(ctx, bookingID, charge.ChargeID); err != nil {
		s.logger.Error("RetryPayment: failed to save charge=%s for booking id=%d: %v", charge.ChargeID, bookingID, err)
	}
	booking.PaymentIntentID = &charge.ChargeID

	switch charge.Status {
	case payment.ChargeSuccessful:
		updated, err := s.ApplyPaymentResult(ctx, bookingID, charge.ChargeID, true)
		if err != nil {
			return nil, err
		}
		booking = updated
	case payment.ChargeFailed:
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, charge.FailureMessage)
	}

	return models.FromDomainBooking(booking, s.engine.Location()), nil
}

// Delete физически удаляет бронирование (только администратор)
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d removed", bookingID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// cancellationDeadline момент, после которого клиент не может отменить бронирование
func cancellationDeadline(start time.Time) time.Time {
	return start.Add(-domain.CancellationWindow)
}
