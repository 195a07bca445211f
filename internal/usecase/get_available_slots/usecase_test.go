package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
)

type mockResources struct {
	resource *domain.Resource
}

func (m *mockResources) GetResource(_ context.Context, ref domain.ResourceRef) (*domain.Resource, error) {
	if m.resource == nil || m.resource.Ref() != ref {
		return nil, catalogService.ErrResourceNotFound
	}
	return m.resource, nil
}

type mockLoader struct {
	snap availability.Snapshot
}

func (m *mockLoader) Load(_ context.Context, _ time.Time) (availability.Snapshot, error) {
	return m.snap, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockTimeProvider struct {
	now time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.now
}

var courtB = &domain.Resource{Kind: domain.ResourceSpace, ID: "court-b", HourlyRate: 30, IsActive: true, SpaceIDs: []string{"court-b"}}

func newUseCase(loader *mockLoader, res *domain.Resource) (*UseCase, *mockTxManager) {
	tx := &mockTxManager{}
	uc := NewUseCase(&mockResources{resource: res}, loader, availability.NewEngine(time.UTC), tx, logger.NewNop())
	uc.timeProvider = &mockTimeProvider{now: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	return uc, tx
}

func TestExecute_Schedule(t *testing.T) {
	loader := &mockLoader{snap: availability.Snapshot{
		Policy: domain.DefaultFacilityPolicy(),
		Bookings: []*domain.Booking{{
			BundleID:         ptr.Ptr("full-hall"),
			ReservedSpaceIDs: []string{"court-a", "court-b", "court-c"},
			StartTime:        time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC),
			EndTime:          time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC),
			Status:           domain.StatusConfirmed,
		}},
	}}
	uc, tx := newUseCase(loader, courtB)

	resp, err := uc.Execute(context.Background(), &Request{
		Resource: courtB.Ref(),
		Date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	slots := resp.Schedule.Slots
	require.Len(t, slots, 13) // 08:00 .. 20:00
	assert.Equal(t, "08:00", slots[0].StartTime.String())
	assert.Equal(t, []int{1, 2, 3}, slots[0].Durations)

	// 12:00 упирается в занятый час 14:00
	assert.Equal(t, []int{1, 2}, slots[4].Durations)
	assert.Equal(t, availability.ReasonConflict, slots[6].Reason)
	assert.Empty(t, slots[6].Durations)

	// 20:00 только на час до закрытия
	assert.Equal(t, []int{1}, slots[12].Durations)
}

func TestExecute_SundayClosed(t *testing.T) {
	policy := domain.DefaultFacilityPolicy()
	policy.SundayOpen = false
	uc, _ := newUseCase(&mockLoader{snap: availability.Snapshot{Policy: policy}}, courtB)

	resp, err := uc.Execute(context.Background(), &Request{
		Resource: courtB.Ref(),
		Date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, availability.ReasonDayClosed, resp.Schedule.Reason)
	assert.Empty(t, resp.Schedule.Slots)
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := newUseCase(&mockLoader{}, courtB)

	_, err := uc.Execute(context.Background(), &Request{Resource: domain.ResourceRef{Kind: "room", ID: "x"}, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Resource: courtB.Ref()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Resource: domain.ResourceRef{Kind: domain.ResourceSpace, ID: "missing"},
		Date:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	inactive := *courtB
	inactive.IsActive = false
	uc, _ = newUseCase(&mockLoader{}, &inactive)
	_, err = uc.Execute(context.Background(), &Request{Resource: inactive.Ref(), Date: time.Now()})
	assert.ErrorIs(t, err, ErrResourceInactive)
}
