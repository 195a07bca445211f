package check_slot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/ptr"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

type mockResources struct {
	byRef map[domain.ResourceRef]*domain.Resource
}

func (m *mockResources) GetResource(_ context.Context, ref domain.ResourceRef) (*domain.Resource, error) {
	if r, ok := m.byRef[ref]; ok {
		return r, nil
	}
	return nil, catalogService.ErrResourceNotFound
}

type mockLoader struct {
	snap availability.Snapshot
}

func (m *mockLoader) Load(_ context.Context, _ time.Time) (availability.Snapshot, error) {
	return m.snap, nil
}

type mockTxManager struct{}

func (mockTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockTimeProvider struct {
	now time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.now
}

var (
	courtA = &domain.Resource{Kind: domain.ResourceSpace, ID: "court-a", HourlyRate: 30, IsActive: true, SpaceIDs: []string{"court-a"}}
	courtB = &domain.Resource{Kind: domain.ResourceSpace, ID: "court-b", HourlyRate: 30, IsActive: true, SpaceIDs: []string{"court-b"}}
	hall   = &domain.Resource{Kind: domain.ResourceBundle, ID: "full-hall", HourlyRate: 80, IsActive: true, SpaceIDs: []string{"court-a", "court-b", "court-c"}}

	resources = &mockResources{byRef: map[domain.ResourceRef]*domain.Resource{
		courtA.Ref(): courtA,
		courtB.Ref(): courtB,
		hall.Ref():   hall,
	}}
)

func TestExecute(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	loader := &mockLoader{snap: availability.Snapshot{
		Policy: domain.DefaultFacilityPolicy(),
		Bookings: []*domain.Booking{{
			BundleID:         ptr.Ptr("full-hall"),
			ReservedSpaceIDs: hall.SpaceIDs,
			StartTime:        time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC),
			EndTime:          time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC),
			Status:           domain.StatusConfirmed,
		}},
	}}

	uc := NewUseCase(resources, loader, availability.NewEngine(time.UTC), mockTxManager{}, logger.NewNop())
	uc.timeProvider = &mockTimeProvider{now: now}

	tests := []struct {
		name     string
		start    string
		hours    int
		bookable bool
		reason   availability.Reason
		max      int
		total    float64
	}{
		{"free two hours", "10:00", 2, true, availability.ReasonNone, 3, 60},
		{"bundle blocks space", "14:30", 1, false, availability.ReasonConflict, 0, 0},
		{"max limited by conflict", "12:00", 1, true, availability.ReasonNone, 2, 30},
		{"end at closing", "19:00", 2, true, availability.ReasonNone, 2, 60},
		{"past closing", "19:01", 2, false, availability.ReasonPastClosing, 1, 0},
		{"invalid duration", "10:00", 4, false, availability.ReasonInvalidDuration, 3, 0},
		{"invalid time", "10:75", 1, false, availability.ReasonInvalidTime, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{
				Resource:      courtB.Ref(),
				Date:          day,
				StartTime:     types.TimeString(tt.start),
				DurationHours: tt.hours,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.bookable, resp.Bookable)
			assert.Equal(t, tt.reason, resp.Reason)
			assert.Equal(t, tt.max, resp.MaxDuration)
			assert.Equal(t, tt.total, resp.TotalAmount)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(resources, &mockLoader{}, availability.NewEngine(time.UTC), mockTxManager{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Resource: domain.ResourceRef{Kind: domain.ResourceBundle, ID: "missing"},
		Date:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

// Заглушки зависимостей создания, не участвующих в проверке слота

type nopBookingRepo struct{}

func (nopBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 1
	return b, nil
}

func (nopBookingRepo) SetPaymentIntent(context.Context, int64, string) error { return nil }

type nopGateway struct{}

func (nopGateway) CreateCharge(context.Context, payment.ChargeRequest) (*payment.ChargeResult, error) {
	return &payment.ChargeResult{ChargeID: "chrg", Status: payment.ChargePending}, nil
}

type nopApplier struct{}

func (nopApplier) ApplyPaymentResult(context.Context, int64, string, bool) (*domain.Booking, error) {
	return nil, nil
}

type nopNotifier struct{}

func (nopNotifier) SendConfirmation(context.Context, *domain.Booking) error { return nil }

// Проверка слота и создание бронирования приходят к одному решению на одних входных данных
func TestExecute_AgreesWithCreate(t *testing.T) {
	engine := availability.NewEngine(time.UTC)
	today := engine.Today(time.Now())

	policy := domain.DefaultFacilityPolicy()
	policy.ClosingHour = 20
	day := today.AddDate(0, 0, 2)

	loader := &mockLoader{snap: availability.Snapshot{
		Policy: policy,
		Bookings: []*domain.Booking{
			{
				SpaceID:          ptr.Ptr("court-a"),
				ReservedSpaceIDs: []string{"court-a"},
				StartTime:        day.Add(10 * time.Hour),
				EndTime:          day.Add(12 * time.Hour),
				Status:           domain.StatusConfirmed,
			},
			{
				BundleID:         ptr.Ptr("full-hall"),
				ReservedSpaceIDs: hall.SpaceIDs,
				StartTime:        day.Add(16 * time.Hour),
				EndTime:          day.Add(17 * time.Hour),
				Status:           domain.StatusConfirmed,
			},
			{
				SpaceID:          ptr.Ptr("court-b"),
				ReservedSpaceIDs: []string{"court-b"},
				StartTime:        day.Add(9 * time.Hour),
				EndTime:          day.Add(10 * time.Hour),
				Status:           domain.StatusPending,
			},
		},
	}}

	check := NewUseCase(resources, loader, engine, mockTxManager{}, logger.NewNop())
	create := create_booking.NewUseCase(nopBookingRepo{}, resources, loader, engine,
		nopGateway{}, nopApplier{}, nopNotifier{}, mockTxManager{}, logger.NewNop())

	dates := []time.Time{today.AddDate(0, 0, -1), day, today.AddDate(0, 5, 0)}
	starts := []string{"07:00", "08:00", "09:30", "11:00", "15:30", "17:00", "18:00", "19:00"}

	for _, date := range dates {
		for _, res := range []*domain.Resource{courtA, courtB, hall} {
			for _, start := range starts {
				for _, hours := range []int{1, 2, 3} {
					name := fmt.Sprintf("%s/%s/%s/%dh", date.Format(domain.DateFormat), res.ID, start, hours)

					checked, err := check.Execute(context.Background(), &Request{
						Resource:      res.Ref(),
						Date:          date,
						StartTime:     types.TimeString(start),
						DurationHours: hours,
					})
					require.NoError(t, err, name)

					req := &create_booking.Request{
						UserID:        "user-1",
						Date:          date,
						StartTime:     types.TimeString(start),
						DurationHours: hours,
						PaymentMethod: domain.PaymentCard,
						CardToken:     "tokn",
					}
					if res.Kind == domain.ResourceBundle {
						req.BundleID = ptr.Ptr(res.ID)
					} else {
						req.SpaceID = ptr.Ptr(res.ID)
					}
					_, createErr := create.Execute(context.Background(), req)

					assert.Equal(t, checked.Bookable, createErr == nil, name)
					if !checked.Bookable {
						var policyErr *create_booking.PolicyError
						if errors.As(createErr, &policyErr) {
							assert.Equal(t, checked.Reason, policyErr.Reason, name)
						} else {
							assert.Equal(t, availability.ReasonConflict, checked.Reason, name)
							assert.ErrorIs(t, createErr, create_booking.ErrSlotNotAvailable, name)
						}
					}
				}
			}
		}
	}
}
