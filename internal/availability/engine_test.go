package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

var facilityLoc = time.FixedZone("ICT", 7*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func localTime(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, facilityLoc)
}

func space(id string) *domain.Resource {
	return &domain.Resource{Kind: domain.ResourceSpace, ID: id, HourlyRate: 30, IsActive: true, SpaceIDs: []string{id}}
}

func bundle(id string, spaces ...string) *domain.Resource {
	return &domain.Resource{Kind: domain.ResourceBundle, ID: id, HourlyRate: 80, IsActive: true, SpaceIDs: spaces}
}

func confirmed(e *Engine, res *domain.Resource, day time.Time, start types.TimeString, hours int) *domain.Booking {
	from, to := e.CandidateInterval(day, start, hours)
	b := &domain.Booking{
		ReservedSpaceIDs: res.SpaceIDs,
		StartTime:        from,
		EndTime:          to,
		DurationHours:    hours,
		Status:           domain.StatusConfirmed,
	}
	id := res.ID
	if res.Kind == domain.ResourceBundle {
		b.BundleID = &id
	} else {
		b.SpaceID = &id
	}
	return b
}

func defaultSnapshot() Snapshot {
	return Snapshot{Policy: domain.DefaultFacilityPolicy()}
}

// Вторник 2025-06-10, 09:00 по времени площадки
var now = localTime(2025, time.June, 10, 9, 0)

func TestCheckDay(t *testing.T) {
	e := NewEngine(facilityLoc)

	tests := []struct {
		name   string
		date   time.Time
		mutate func(s *Snapshot)
		want   Reason
	}{
		{name: "today", date: date(2025, time.June, 10)},
		{name: "yesterday", date: date(2025, time.June, 9), want: ReasonDateInPast},
		{name: "exactly four months", date: date(2025, time.October, 10)},
		{name: "four months and a day", date: date(2025, time.October, 11), want: ReasonHorizonExceeded},
		{
			name:   "sunday closed",
			date:   date(2025, time.June, 15),
			mutate: func(s *Snapshot) { s.Policy.SundayOpen = false },
			want:   ReasonDayClosed,
		},
		{
			name: "blocked date",
			date: date(2025, time.June, 12),
			mutate: func(s *Snapshot) {
				s.BlockedDates = []domain.BlockedDate{{Date: "2025-06-12", Reason: "tournament"}}
			},
			want: ReasonDateBlocked,
		},
		{
			name: "blocked date is exact match only",
			date: date(2025, time.June, 13),
			mutate: func(s *Snapshot) {
				s.BlockedDates = []domain.BlockedDate{{Date: "2025-06-12"}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := defaultSnapshot()
			if tt.mutate != nil {
				tt.mutate(&snap)
			}
			d := e.CheckDay(tt.date, now, snap)
			assert.Equal(t, tt.want, d.Reason)
			assert.Equal(t, tt.want == ReasonNone, d.Bookable)
		})
	}
}

func TestCheckDay_UsesFacilityTimezone(t *testing.T) {
	e := NewEngine(facilityLoc)

	// 2025-06-10 20:00 UTC это уже 2025-06-11 03:00 на площадке
	utcNow := time.Date(2025, time.June, 10, 20, 0, 0, 0, time.UTC)
	d := e.CheckDay(date(2025, time.June, 10), utcNow, defaultSnapshot())

	assert.Equal(t, ReasonDateInPast, d.Reason)
}

func TestCheckSlot_ClosingBoundary(t *testing.T) {
	e := NewEngine(facilityLoc)
	snap := defaultSnapshot()
	day := date(2025, time.June, 11)

	tests := []struct {
		start types.TimeString
		hours int
		want  Reason
	}{
		{"20:00", 1, ReasonNone},
		{"18:00", 3, ReasonNone},
		{"20:01", 1, ReasonPastClosing},
		{"19:00", 3, ReasonPastClosing},
		{"21:00", 1, ReasonPastClosing},
		{"07:30", 1, ReasonOutsideHours},
		{"08:00", 1, ReasonNone},
		{"10:00", 4, ReasonInvalidDuration},
		{"10:00", 0, ReasonInvalidDuration},
		{"25:00", 1, ReasonInvalidTime},
	}

	for _, tt := range tests {
		d := e.CheckSlot(SlotQuery{Resource: space("A"), Date: day, Start: tt.start, Hours: tt.hours, Now: now}, snap)
		assert.Equal(t, tt.want, d.Reason, "%s +%dh", tt.start, tt.hours)
	}
}

func TestCheckSlot_SameDayNotice(t *testing.T) {
	e := NewEngine(facilityLoc)
	snap := defaultSnapshot()
	today := date(2025, time.June, 10)

	exact := e.CheckSlot(SlotQuery{Resource: space("A"), Date: today, Start: "10:00", Hours: 1, Now: now}, snap)
	assert.True(t, exact.Bookable)

	late := e.CheckSlot(SlotQuery{Resource: space("A"), Date: today, Start: "10:00", Hours: 1, Now: now.Add(time.Minute)}, snap)
	assert.Equal(t, ReasonTooSoon, late.Reason)

	// На следующий день ограничение не действует
	tomorrow := e.CheckSlot(SlotQuery{Resource: space("A"), Date: date(2025, time.June, 11), Start: "08:00", Hours: 1, Now: localTime(2025, time.June, 10, 23, 30)}, snap)
	assert.True(t, tomorrow.Bookable)
}

func TestCheckSlot_Conflicts(t *testing.T) {
	e := NewEngine(facilityLoc)
	day := date(2025, time.June, 11)
	abc := bundle("hall", "A", "B", "C")

	tests := []struct {
		name     string
		existing *domain.Booking
		res      *domain.Resource
		start    types.TimeString
		want     Reason
	}{
		{"bundle blocks its space", confirmed(e, abc, day, "14:00", 1), space("B"), "14:30", ReasonConflict},
		{"bundle leaves other spaces", confirmed(e, abc, day, "14:00", 1), space("D"), "14:30", ReasonNone},
		{"space blocks bundle", confirmed(e, space("C"), day, "14:00", 1), abc, "13:30", ReasonConflict},
		{"space vs same space", confirmed(e, space("A"), day, "14:00", 2), space("A"), "15:00", ReasonConflict},
		{"space vs other space", confirmed(e, space("A"), day, "14:00", 2), space("B"), "15:00", ReasonNone},
		{"bundle vs intersecting bundle", confirmed(e, bundle("half", "C", "D"), day, "14:00", 1), abc, "14:00", ReasonConflict},
		{"same bundle twice", confirmed(e, abc, day, "14:00", 1), abc, "14:00", ReasonConflict},
		{"touching end", confirmed(e, abc, day, "14:00", 1), space("B"), "15:00", ReasonNone},
		{"touching start", confirmed(e, abc, day, "14:00", 1), space("B"), "13:00", ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := defaultSnapshot()
			snap.Bookings = []*domain.Booking{tt.existing}

			d := e.CheckSlot(SlotQuery{Resource: tt.res, Date: day, Start: tt.start, Hours: 1, Now: now}, snap)
			assert.Equal(t, tt.want, d.Reason)
		})
	}
}

func TestCheckSlot_IgnoresNonConfirmed(t *testing.T) {
	e := NewEngine(facilityLoc)
	day := date(2025, time.June, 11)

	for _, status := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusCancelled, domain.StatusExpired, domain.StatusPaymentFailed,
	} {
		b := confirmed(e, space("A"), day, "14:00", 1)
		b.Status = status

		snap := defaultSnapshot()
		snap.Bookings = []*domain.Booking{b}

		d := e.CheckSlot(SlotQuery{Resource: space("A"), Date: day, Start: "14:00", Hours: 1, Now: now}, snap)
		assert.True(t, d.Bookable, string(status))
	}
}

func TestCheckSlot_DayGateComesFirst(t *testing.T) {
	e := NewEngine(facilityLoc)
	snap := defaultSnapshot()
	snap.BlockedDates = []domain.BlockedDate{{Date: "2025-06-11"}}

	d := e.CheckSlot(SlotQuery{Resource: space("A"), Date: date(2025, time.June, 11), Start: "20:00", Hours: 3, Now: now}, snap)
	assert.Equal(t, ReasonDateBlocked, d.Reason)
}

func TestMaxDuration(t *testing.T) {
	e := NewEngine(facilityLoc)
	day := date(2025, time.June, 11)
	snap := defaultSnapshot()
	snap.Bookings = []*domain.Booking{confirmed(e, space("A"), day, "16:00", 1)}

	q := func(start types.TimeString) SlotQuery {
		return SlotQuery{Resource: space("A"), Date: day, Start: start, Hours: 3, Now: now}
	}

	assert.Equal(t, 3, e.MaxDuration(q("10:00"), snap))
	assert.Equal(t, 2, e.MaxDuration(q("14:00"), snap))
	assert.Equal(t, 1, e.MaxDuration(q("15:00"), snap))
	assert.Equal(t, 0, e.MaxDuration(q("16:00"), snap))
	assert.Equal(t, 2, e.MaxDuration(q("19:00"), snap))
	assert.Equal(t, 1, e.MaxDuration(q("20:00"), snap))
}

func TestDaySchedule(t *testing.T) {
	e := NewEngine(facilityLoc)
	day := date(2025, time.June, 11)
	snap := defaultSnapshot()

	schedule := e.DaySchedule(space("A"), day, now, snap)

	assert.Equal(t, ReasonNone, schedule.Reason)
	require.Len(t, schedule.Slots, 13)
	assert.Equal(t, types.TimeString("08:00"), schedule.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("20:00"), schedule.Slots[12].StartTime)
	assert.Equal(t, []int{1, 2, 3}, schedule.Slots[0].Durations)
	assert.Equal(t, []int{1, 2}, schedule.Slots[11].Durations)
	assert.Equal(t, []int{1}, schedule.Slots[12].Durations)
}

func TestDaySchedule_ConflictAndNotice(t *testing.T) {
	e := NewEngine(facilityLoc)
	today := date(2025, time.June, 10)
	snap := defaultSnapshot()
	snap.Bookings = []*domain.Booking{confirmed(e, bundle("hall", "A", "B"), today, "12:00", 2)}

	schedule := e.DaySchedule(space("A"), today, now, snap)
	require.Len(t, schedule.Slots, 13)

	byStart := make(map[types.TimeString]Slot)
	for _, s := range schedule.Slots {
		byStart[s.StartTime] = s
	}

	assert.Empty(t, byStart["08:00"].Durations)
	assert.Equal(t, ReasonTooSoon, byStart["08:00"].Reason)
	assert.Equal(t, ReasonTooSoon, byStart["09:00"].Reason)
	assert.Equal(t, []int{1, 2}, byStart["10:00"].Durations)
	assert.Equal(t, []int{1}, byStart["11:00"].Durations)
	assert.Equal(t, ReasonConflict, byStart["12:00"].Reason)
	assert.Equal(t, ReasonConflict, byStart["13:00"].Reason)
	assert.Equal(t, []int{1, 2, 3}, byStart["14:00"].Durations)
}

func TestDaySchedule_SundayClosed(t *testing.T) {
	e := NewEngine(facilityLoc)
	snap := defaultSnapshot()
	snap.Policy.SundayOpen = false

	schedule := e.DaySchedule(space("A"), date(2025, time.June, 15), now, snap)

	assert.Equal(t, ReasonDayClosed, schedule.Reason)
	assert.Empty(t, schedule.Slots)
}

func TestDaySchedule_BlockedForEveryResource(t *testing.T) {
	e := NewEngine(facilityLoc)
	snap := defaultSnapshot()
	snap.BlockedDates = []domain.BlockedDate{{Date: "2025-12-25", Reason: "Christmas"}}
	autumn := localTime(2025, time.October, 1, 12, 0)

	for _, res := range []*domain.Resource{space("A"), space("B"), bundle("hall", "A", "B")} {
		schedule := e.DaySchedule(res, date(2025, time.December, 25), autumn, snap)
		assert.Equal(t, ReasonDateBlocked, schedule.Reason, res.ID)
		assert.Empty(t, schedule.Slots)

		for hour := 8; hour < 21; hour++ {
			start, err := types.FromHour(hour)
			require.NoError(t, err)
			d := e.CheckSlot(SlotQuery{Resource: res, Date: date(2025, time.December, 25), Start: start, Hours: 1, Now: autumn}, snap)
			assert.Equal(t, ReasonDateBlocked, d.Reason)
		}
	}
}

func TestCandidateInterval(t *testing.T) {
	e := NewEngine(facilityLoc)

	from, to := e.CandidateInterval(date(2025, time.June, 11), "14:30", 2)

	assert.Equal(t, time.Date(2025, time.June, 11, 7, 30, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC), to)
	assert.Equal(t, time.UTC, from.Location())
}

func TestReason_IsPolicy(t *testing.T) {
	assert.True(t, ReasonTooSoon.IsPolicy())
	assert.False(t, ReasonConflict.IsPolicy())
	assert.False(t, ReasonNone.IsPolicy())
}

func TestConflicts(t *testing.T) {
	e := NewEngine(time.UTC)
	start := time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC)
	snap := Snapshot{Bookings: []*domain.Booking{
		{ReservedSpaceIDs: []string{"a", "b", "c"}, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.StatusConfirmed},
		{ReservedSpaceIDs: []string{"d"}, StartTime: start, EndTime: start.Add(time.Hour), Status: domain.StatusPending},
	}}

	assert.True(t, e.Conflicts([]string{"b"}, start.Add(30*time.Minute), start.Add(90*time.Minute), snap))
	assert.False(t, e.Conflicts([]string{"b"}, start.Add(time.Hour), start.Add(2*time.Hour), snap))
	assert.False(t, e.Conflicts([]string{"d"}, start, start.Add(time.Hour), snap))
}

func TestReason_Message(t *testing.T) {
	for _, r := range []Reason{
		ReasonDateInPast, ReasonHorizonExceeded, ReasonDayClosed, ReasonDateBlocked, ReasonInvalidDuration,
		ReasonInvalidTime, ReasonOutsideHours, ReasonPastClosing, ReasonTooSoon, ReasonConflict,
	} {
		msg := r.Message()
		assert.NotEmpty(t, msg, string(r))
		// Тексты для клиента на русском, как и остальные ответы API
		assert.Regexp(t, `^\p{Cyrillic}`, msg, string(r))
		assert.NotRegexp(t, `[A-Za-z]{3,}`, msg, string(r))
	}
	assert.Empty(t, ReasonNone.Message())
}

func TestCheckSlot_NonexistentLocalTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	e := NewEngine(ny)

	snap := defaultSnapshot()
	snap.Policy.OpeningHour = 0
	snap.Policy.ClosingHour = 23
	nyNow := time.Date(2025, time.March, 1, 12, 0, 0, 0, ny)
	springForward := date(2025, time.March, 9)

	d := e.CheckSlot(SlotQuery{Resource: space("court-a"), Date: springForward, Start: "02:00", Hours: 1, Now: nyNow}, snap)
	assert.False(t, d.Bookable)
	assert.Equal(t, ReasonInvalidTime, d.Reason)

	d = e.CheckSlot(SlotQuery{Resource: space("court-a"), Date: springForward, Start: "03:00", Hours: 1, Now: nyNow}, snap)
	assert.True(t, d.Bookable)

	schedule := e.DaySchedule(space("court-a"), springForward, nyNow, snap)
	require.Len(t, schedule.Slots, 23)
	assert.Empty(t, schedule.Slots[2].Durations)
	assert.Equal(t, ReasonInvalidTime, schedule.Slots[2].Reason)
}
