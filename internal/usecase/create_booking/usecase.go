package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resources    ResourceProvider
	snapshots    SnapshotLoader
	engine       *availability.Engine
	payments     PaymentGateway
	applier      PaymentResultApplier
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resources ResourceProvider,
	snapshots SnapshotLoader,
	engine *availability.Engine,
	payments PaymentGateway,
	applier PaymentResultApplier,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resources:    resources,
		snapshots:    snapshots,
		engine:       engine,
		payments:     payments,
		applier:      applier,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка выполняются в сериализуемой транзакции,
// списание по карте и уведомление после фиксации.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	ref := req.resourceRef()
	uc.logger.Info("CreateBooking: user=%s, %s=%s, date=%s, time=%s, hours=%d, payment=%s",
		req.UserID, ref.Kind, ref.ID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours, req.PaymentMethod)

	resource, err := uc.resources.GetResource(ctx, ref)
	if err != nil {
		if errors.Is(err, catalogService.ErrResourceNotFound) {
			uc.logger.Warn("CreateBooking: %s=%s not found", ref.Kind, ref.ID)
			return nil, fmt.Errorf("%w: %s %q", ErrResourceNotFound, ref.Kind, ref.ID)
		}
		uc.logger.Error("CreateBooking: failed to resolve %s=%s: %v", ref.Kind, ref.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
	}
	if !resource.IsActive {
		uc.logger.Warn("CreateBooking: %s=%s is inactive", ref.Kind, ref.ID)
		return nil, fmt.Errorf("%w: %s %q", ErrResourceInactive, ref.Kind, ref.ID)
	}

	now := uc.timeProvider.Now()

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		snap, err := uc.snapshots.Load(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load day state: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		decision := uc.engine.CheckSlot(availability.SlotQuery{
			Resource: resource,
			Date:     req.Date,
			Start:    req.StartTime,
			Hours:    req.DurationHours,
			Now:      now,
		}, snap)
		if !decision.Bookable {
			if decision.Reason == availability.ReasonConflict {
				uc.logger.Warn("CreateBooking: slot %s %s is taken", req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Warn("CreateBooking: slot rejected: %s", decision.Reason)
			return &PolicyError{Reason: decision.Reason}
		}

		booking := uc.newBooking(req, resource)
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d status=%s", created.ID, created.Status)

	resp := &Response{Booking: created}

	if created.Status == domain.StatusConfirmed {
		if err := uc.notifier.SendConfirmation(ctx, created); err != nil {
			uc.logger.Error("CreateBooking: confirmation for booking id=%d failed: %v", created.ID, err)
		}
		return resp, nil
	}

	uc.charge(ctx, req.CardToken, resp)
	return resp, nil
}

// charge списывает оплату за созданное бронирование.
// Ошибки процессора не отменяют создание: бронирование остается pending
// или переходит в payment_failed.
func (uc *UseCase) charge(ctx context.Context, cardToken string, resp *Response) {
	booking := resp.Booking

	result, err := uc.payments.CreateCharge(ctx, payment.ChargeRequest{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		CardToken: cardToken,
	})
	if err != nil {
		resp.PaymentError = ptr.Ptr(err.Error())
		if !errors.Is(err, payment.ErrDeclined) && !errors.Is(err, payment.ErrInvalidRequest) {
			// Без окончательного ответа бронирование истечет по таймауту
			uc.logger.Error("CreateCharge: booking id=%d left pending: %v", booking.ID, err)
			return
		}
		uc.applyResult(ctx, resp, "", false)
		return
	}

	resp.ChargeID = ptr.Ptr(result.ChargeID)
	if err := uc.bookingRepo.SetPaymentIntent(ctx, booking.ID, result.ChargeID); err != nil {
		uc.logger.Error("CreateBooking: failed to save charge=%s for booking id=%d: %v", result.ChargeID, booking.ID, err)
	}
	booking.PaymentIntentID = ptr.Ptr(result.ChargeID)

	if !result.Status.IsTerminal() {
		return
	}
	if result.Status == payment.ChargeFailed && result.FailureMessage != "" {
		resp.PaymentError = ptr.Ptr(result.FailureMessage)
	}
	uc.applyResult(ctx, resp, result.ChargeID, result.Status == payment.ChargeSuccessful)
}

func (uc *UseCase) applyResult(ctx context.Context, resp *Response, chargeID string, success bool) {
	updated, err := uc.applier.ApplyPaymentResult(ctx, resp.Booking.ID, chargeID, success)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to apply payment result for booking id=%d: %v", resp.Booking.ID, err)
		return
	}
	if updated != nil {
		resp.Booking = updated
	}
}

func (uc *UseCase) newBooking(req *Request, resource *domain.Resource) *domain.Booking {
	start, end := uc.engine.CandidateInterval(req.Date, req.StartTime, req.DurationHours)

	status := domain.StatusPending
	if req.PaymentMethod != domain.PaymentCard {
		status = domain.StatusConfirmed
	}

	spaceIDs := make([]string, len(resource.SpaceIDs))
	copy(spaceIDs, resource.SpaceIDs)

	return &domain.Booking{
		UserID:           req.UserID,
		SpaceID:          req.SpaceID,
		BundleID:         req.BundleID,
		ReservedSpaceIDs: spaceIDs,
		StartTime:        start,
		EndTime:          end,
		DurationHours:    req.DurationHours,
		HourlyRate:       resource.HourlyRate,
		TotalAmount:      domain.CalculateTotal(resource.HourlyRate, req.DurationHours),
		Status:           status,
		PaymentMethod:    req.PaymentMethod,
	}
}
