package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

type mockRepo struct {
	spaces  map[string]*domain.Space
	bundles map[string]*domain.Bundle
}

func (m *mockRepo) ListSpaces(ctx context.Context, onlyActive bool) ([]*domain.Space, error) {
	var out []*domain.Space
	for _, s := range m.spaces {
		if !onlyActive || s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) ListBundles(ctx context.Context, onlyActive bool) ([]*domain.Bundle, error) {
	var out []*domain.Bundle
	for _, b := range m.bundles {
		if !onlyActive || b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockRepo) GetSpace(ctx context.Context, id string) (*domain.Space, error) {
	if s, ok := m.spaces[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrSpaceNotFound
}

func (m *mockRepo) GetBundle(ctx context.Context, id string) (*domain.Bundle, error) {
	if b, ok := m.bundles[id]; ok {
		return b, nil
	}
	return nil, catalogRepo.ErrBundleNotFound
}

func newRepo() *mockRepo {
	return &mockRepo{
		spaces: map[string]*domain.Space{
			"court-1": {ID: "court-1", Name: "Court 1", HourlyRate: 30, IsActive: true},
			"court-2": {ID: "court-2", Name: "Court 2", HourlyRate: 30, IsActive: false},
		},
		bundles: map[string]*domain.Bundle{
			"hall":  {ID: "hall", Name: "Full hall", HourlyRate: 80, IsActive: true, SpaceIDs: []string{"court-1", "court-2"}},
			"empty": {ID: "empty", Name: "Broken", IsActive: true},
		},
	}
}

func TestGetResource(t *testing.T) {
	svc := NewService(newRepo(), logger.NewNop())

	space, err := svc.GetResource(context.Background(), domain.ResourceRef{Kind: domain.ResourceSpace, ID: "court-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"court-1"}, space.SpaceIDs)
	assert.Equal(t, 30.0, space.HourlyRate)

	bundle, err := svc.GetResource(context.Background(), domain.ResourceRef{Kind: domain.ResourceBundle, ID: "hall"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"court-1", "court-2"}, bundle.SpaceIDs)
}

func TestGetResource_Errors(t *testing.T) {
	svc := NewService(newRepo(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.GetResource(ctx, domain.ResourceRef{Kind: domain.ResourceSpace, ID: "missing"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = svc.GetResource(ctx, domain.ResourceRef{Kind: domain.ResourceBundle, ID: "missing"})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = svc.GetResource(ctx, domain.ResourceRef{Kind: "room", ID: "court-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetResource(ctx, domain.ResourceRef{Kind: domain.ResourceBundle, ID: "empty"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListSpaces(t *testing.T) {
	svc := NewService(newRepo(), logger.NewNop())

	active, err := svc.ListSpaces(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active.Spaces, 1)

	all, err := svc.ListSpaces(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all.Spaces, 2)
}
