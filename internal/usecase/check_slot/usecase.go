package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
)

// UseCase проверка одного слота тем же движком и загрузчиком, что и создание
type UseCase struct {
	resources    ResourceProvider
	snapshots    SnapshotLoader
	engine       *availability.Engine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resources ResourceProvider,
	snapshots SnapshotLoader,
	engine *availability.Engine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		resources:    resources,
		snapshots:    snapshots,
		engine:       engine,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает решение по слоту и максимальную длительность.
// Некорректные время и длительность возвращаются как причина, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !req.Resource.Kind.IsValid() || req.Resource.ID == "" {
		return nil, fmt.Errorf("%w: resource is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resource, err := uc.resources.GetResource(ctx, req.Resource)
	if err != nil {
		if errors.Is(err, catalogService.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: %s %q", ErrResourceNotFound, req.Resource.Kind, req.Resource.ID)
		}
		uc.logger.Error("CheckSlot: failed to resolve resource: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve resource: %v", ErrInternal, err)
	}
	if !resource.IsActive {
		return nil, fmt.Errorf("%w: %s %q", ErrResourceInactive, req.Resource.Kind, req.Resource.ID)
	}

	var snap availability.Snapshot
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		snap, err = uc.snapshots.Load(txCtx, req.Date)
		return err
	})
	if err != nil {
		uc.logger.Error("CheckSlot: failed to load day state: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	q := availability.SlotQuery{
		Resource: resource,
		Date:     req.Date,
		Start:    req.StartTime,
		Hours:    req.DurationHours,
		Now:      uc.timeProvider.Now(),
	}

	decision := uc.engine.CheckSlot(q, snap)
	resp := &Response{
		Bookable:    decision.Bookable,
		Reason:      decision.Reason,
		MaxDuration: uc.engine.MaxDuration(q, snap),
	}
	if decision.Bookable {
		resp.TotalAmount = domain.CalculateTotal(resource.HourlyRate, req.DurationHours)
	}

	uc.logger.Info("CheckSlot: %s=%s %s %s %dh -> bookable=%t reason=%s",
		req.Resource.Kind, req.Resource.ID, req.Date.Format(domain.DateFormat), req.StartTime,
		req.DurationHours, resp.Bookable, resp.Reason)

	return resp, nil
}
