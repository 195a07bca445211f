package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusPaymentFailed, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPaymentFailed, true},
		{StatusPaymentFailed, StatusConfirmed, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusExpired, StatusConfirmed, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.ok, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusPaymentFailed.IsTerminal())
	assert.False(t, BookingStatus("unknown").IsTerminal())
}

func TestStatusesFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]BookingStatus{StatusPending, StatusConfirmed, StatusPaymentFailed},
		StatusesFrom(StatusCancelled))
	assert.Equal(t, []BookingStatus{StatusPending}, StatusesFrom(StatusExpired))
}

func TestCalculateTotal(t *testing.T) {
	assert.Equal(t, 60.00, CalculateTotal(30, 2))
	assert.Equal(t, 37.5, CalculateTotal(12.5, 3))
	assert.Equal(t, 0.3, CalculateTotal(0.1, 3))
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: base, EndTime: base.Add(time.Hour)}

	assert.True(t, b.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.False(t, b.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, b.Overlaps(base.Add(-time.Hour), base))
}

func TestBooking_Resource(t *testing.T) {
	space := "court-1"
	b := &Booking{SpaceID: &space}
	assert.True(t, b.HasSingleResource())
	assert.Equal(t, ResourceRef{Kind: ResourceSpace, ID: "court-1"}, b.Resource())

	bundle := "full-hall"
	b.BundleID = &bundle
	assert.False(t, b.HasSingleResource())
}

func TestFacilityPolicy_IsOpenOn(t *testing.T) {
	p := DefaultFacilityPolicy()
	p.SundayOpen = false

	assert.False(t, p.IsOpenOn(time.Sunday))
	assert.True(t, p.IsOpenOn(time.Monday))

	days := p.OpenDays()
	days[6] = false
	p.SetOpenDays(days)
	assert.False(t, p.IsOpenOn(time.Saturday))
}
