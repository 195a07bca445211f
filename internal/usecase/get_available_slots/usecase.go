package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
)

// UseCase use case для получения расписания ресурса на день
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

// Execute возвращает стартовые часы дня с допустимыми длительностями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %s=%s, date=%s",
		req.Resource.Kind, req.Resource.ID, req.Date.Format(domain.DateFormat))

	resource, err := uc.resources.GetResource(ctx, req.Resource)
	if err != nil {
		if errors.Is(err, catalogService.ErrResourceNotFound) {
			return nil, fmt.Errorf("%w: %s %q", ErrResourceNotFound, req.Resource.Kind, req.Resource.ID)
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve resource: %v", err)
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
		uc.logger.Error("GetAvailableSlots: failed to load day state: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	schedule := uc.engine.DaySchedule(resource, req.Date, uc.timeProvider.Now(), snap)

	return &Response{Resource: resource, Schedule: schedule}, nil
}
