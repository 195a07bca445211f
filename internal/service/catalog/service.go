package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/catalog/models"
)

// Service сервис каталога помещений и наборов
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListSpaces получает помещения (onlyActive=false для администратора)
func (s *Service) ListSpaces(ctx context.Context, onlyActive bool) (*models.SpaceListResponse, error) {
	spaces, err := s.repo.ListSpaces(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListSpaces: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpaces - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpaces(spaces), nil
}

// ListBundles получает наборы (onlyActive=false для администратора)
func (s *Service) ListBundles(ctx context.Context, onlyActive bool) (*models.BundleListResponse, error) {
	bundles, err := s.repo.ListBundles(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListBundles: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBundles - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBundles(bundles), nil
}

// GetResource разрешает ссылку на ресурс в Resource с набором помещений
func (s *Service) GetResource(ctx context.Context, ref domain.ResourceRef) (*domain.Resource, error) {
	if ref.ID == "" {
		return nil, fmt.Errorf("%w: resource id is required", ErrInvalidInput)
	}

	switch ref.Kind {
	case domain.ResourceSpace:
		space, err := s.repo.GetSpace(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSpaceNotFound) {
				return nil, fmt.Errorf("%w: space %q", ErrResourceNotFound, ref.ID)
			}
			s.logger.Error("GetResource: failed to get space=%s: %v", ref.ID, err)
			return nil, fmt.Errorf("%w: GetResource - repository error: %v", ErrInternal, err)
		}
		return domain.ResourceFromSpace(space), nil

	case domain.ResourceBundle:
		bundle, err := s.repo.GetBundle(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBundleNotFound) {
				return nil, fmt.Errorf("%w: bundle %q", ErrResourceNotFound, ref.ID)
			}
			s.logger.Error("GetResource: failed to get bundle=%s: %v", ref.ID, err)
			return nil, fmt.Errorf("%w: GetResource - repository error: %v", ErrInternal, err)
		}
		if len(bundle.SpaceIDs) == 0 {
			s.logger.Error("GetResource: bundle=%s has no spaces", ref.ID)
			return nil, fmt.Errorf("%w: bundle %q has no spaces", ErrInternal, ref.ID)
		}
		return domain.ResourceFromBundle(bundle), nil

	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, ref.Kind)
	}
}
