package facility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/facility/models"
)

// Service сервис политики площадки и заблокированных дат
type Service struct {
	repo   PolicyRepository
	loc    *time.Location
	logger Logger
}

// NewService создает новый экземпляр сервиса площадки
func NewService(repo PolicyRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		repo:   repo,
		loc:    loc,
		logger: logger,
	}
}

// GetPolicy получает политику площадки.
// При отсутствии записи возвращает значения по умолчанию.
func (s *Service) GetPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	policy, err := s.currentPolicy(ctx)
	if err != nil {
		s.logger.Error("GetPolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy, s.loc.String()), nil
}

// UpdatePolicy изменяет часы работы и дни недели
func (s *Service) UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: hours=%d-%d by user=%s", req.OpeningHour, req.ClosingHour, req.UserID)

	if err := validateHours(req.OpeningHour, req.ClosingHour); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed: %v", err)
		return nil, err
	}

	policy, err := s.currentPolicy(ctx)
	if err != nil {
		s.logger.Error("UpdatePolicy: failed to read current policy: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	req.ApplyToPolicy(policy)

	updated, err := s.repo.UpsertPolicy(ctx, policy)
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: policy updated")
	return models.FromDomainPolicy(updated, s.loc.String()), nil
}

// ListBlockedDates получает заблокированные даты в диапазоне (границы опциональны)
func (s *Service) ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	dates, err := s.repo.ListBlockedDates(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDates(dates), nil
}

// AddBlockedDate блокирует дату целиком
func (s *Service) AddBlockedDate(ctx context.Context, req *models.AddBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("AddBlockedDate: date=%s by user=%s", req.Date, req.UserID)

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxBlockedReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	created, err := s.repo.AddBlockedDate(ctx, &domain.BlockedDate{
		Date:      req.Date,
		Reason:    req.Reason,
		CreatedBy: req.UserID,
	})
	if err != nil {
		if errors.Is(err, facilityRepo.ErrBlockedDateExists) {
			s.logger.Warn("AddBlockedDate: date=%s already blocked", req.Date)
			return nil, ErrBlockedDateExists
		}
		s.logger.Error("AddBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedDate: date=%s blocked", created.Date)
	return &models.BlockedDateResponse{
		Date:      created.Date,
		Reason:    created.Reason,
		CreatedBy: created.CreatedBy,
		CreatedAt: created.CreatedAt,
	}, nil
}

// RemoveBlockedDate снимает блокировку даты
func (s *Service) RemoveBlockedDate(ctx context.Context, date string) error {
	s.logger.Info("RemoveBlockedDate: date=%s", date)

	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if err := s.repo.DeleteBlockedDate(ctx, date); err != nil {
		if errors.Is(err, facilityRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("RemoveBlockedDate: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlockedDate - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) currentPolicy(ctx context.Context) (*domain.FacilityPolicy, error) {
	policy, err := s.repo.GetPolicy(ctx)
	if errors.Is(err, facilityRepo.ErrPolicyNotFound) {
		def := domain.DefaultFacilityPolicy()
		return &def, nil
	}
	return policy, err
}

// validateHours проверяет часы работы: 0-23, открытие раньше закрытия
func validateHours(opening, closing int) error {
	if opening < 0 || opening > 23 {
		return fmt.Errorf("%w: openingHour must be between 0 and 23", ErrInvalidInput)
	}
	if closing < 0 || closing > 23 {
		return fmt.Errorf("%w: closingHour must be between 0 and 23", ErrInvalidInput)
	}
	if opening >= closing {
		return fmt.Errorf("%w: openingHour must be before closingHour", ErrInvalidInput)
	}
	return nil
}
