package availability

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Snapshot состояние, на основе которого принимается решение
type Snapshot struct {
	Policy       domain.FacilityPolicy
	BlockedDates []domain.BlockedDate
	Bookings     []*domain.Booking // Подтвержденные бронирования, пересекающие дату
}

// SlotQuery кандидат на бронирование
type SlotQuery struct {
	Resource *domain.Resource
	Date     time.Time // Используются только год, месяц и день
	Start    types.TimeString
	Hours    int
	Now      time.Time
}

// Slot стартовое время и допустимые длительности
type Slot struct {
	StartTime types.TimeString
	Durations []int
	Reason    Reason // Причина отказа для длительности 1 ч, если Durations пуст
}

// Schedule расписание ресурса на день
type Schedule struct {
	Date   time.Time
	Reason Reason // Заполнено, если день целиком недоступен
	Slots  []Slot
}

// Engine проверяет доступность слотов.
// Не обращается к часам и хранилищу, безопасен для конкурентного использования.
type Engine struct {
	loc *time.Location
}

// NewEngine создает движок для часового пояса площадки
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location часовой пояс площадки
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Day полночь календарной даты в часовом поясе площадки
func (e *Engine) Day(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

// Today текущая дата в часовом поясе площадки
func (e *Engine) Today(now time.Time) time.Time {
	return e.Day(now.In(e.loc))
}

// CandidateInterval переводит локальные дату и время в интервал UTC
func (e *Engine) CandidateInterval(date time.Time, start types.TimeString, hours int) (time.Time, time.Time) {
	from := start.On(date, e.loc)
	to := from.Add(time.Duration(hours) * time.Hour)
	return from.UTC(), to.UTC()
}

// CheckDay проверяет, открыт ли день для бронирования
func (e *Engine) CheckDay(date, now time.Time, snap Snapshot) Decision {
	day := e.Day(date)
	today := e.Today(now)

	if day.Before(today) {
		return reject(ReasonDateInPast)
	}
	if day.After(today.AddDate(0, domain.HorizonMonths, 0)) {
		return reject(ReasonHorizonExceeded)
	}
	if !snap.Policy.IsOpenOn(day.Weekday()) {
		return reject(ReasonDayClosed)
	}

	key := day.Format(domain.DateFormat)
	for _, bd := range snap.BlockedDates {
		if bd.Date == key {
			return reject(ReasonDateBlocked)
		}
	}
	return allow()
}

// CheckSlot полная проверка слота: день, часы работы, уведомление, конфликты
func (e *Engine) CheckSlot(q SlotQuery, snap Snapshot) Decision {
	if d := e.CheckDay(q.Date, q.Now, snap); !d.Bookable {
		return d
	}
	return e.checkSlot(q, snap.Policy, newOccupancy(snap.Bookings))
}

// MaxDuration максимальная допустимая длительность в часах для старта q.Start, 0 если нет
func (e *Engine) MaxDuration(q SlotQuery, snap Snapshot) int {
	if d := e.CheckDay(q.Date, q.Now, snap); !d.Bookable {
		return 0
	}
	occ := newOccupancy(snap.Bookings)

	best := 0
	for _, hours := range domain.AllowedDurations {
		q.Hours = hours
		if !e.checkSlot(q, snap.Policy, occ).Bookable {
			break
		}
		best = hours
	}
	return best
}

// DaySchedule перечисляет стартовые часы дня с допустимыми длительностями
func (e *Engine) DaySchedule(res *domain.Resource, date, now time.Time, snap Snapshot) Schedule {
	day := e.Day(date)
	schedule := Schedule{Date: day, Slots: []Slot{}}

	if d := e.CheckDay(day, now, snap); !d.Bookable {
		schedule.Reason = d.Reason
		return schedule
	}

	occ := newOccupancy(snap.Bookings)
	for hour := snap.Policy.OpeningHour; hour < snap.Policy.ClosingHour; hour++ {
		start, err := types.FromHour(hour)
		if err != nil {
			break
		}

		slot := Slot{StartTime: start, Durations: []int{}}
		for _, hours := range domain.AllowedDurations {
			d := e.checkSlot(SlotQuery{Resource: res, Date: day, Start: start, Hours: hours, Now: now}, snap.Policy, occ)
			if d.Bookable {
				slot.Durations = append(slot.Durations, hours)
			} else if hours == domain.MinDurationHours {
				slot.Reason = d.Reason
			}
		}
		schedule.Slots = append(schedule.Slots, slot)
	}
	return schedule
}

// Conflicts проверяет пересечение интервала с подтвержденными бронированиями снимка.
// Правила площадки не проверяются: используется при повторном подтверждении уже созданного бронирования.
func (e *Engine) Conflicts(spaceIDs []string, start, end time.Time, snap Snapshot) bool {
	return newOccupancy(snap.Bookings).busy(spaceIDs, start, end)
}

// checkSlot проверки уровня слота; день уже проверен
func (e *Engine) checkSlot(q SlotQuery, policy domain.FacilityPolicy, occ occupancy) Decision {
	if !domain.IsAllowedDuration(q.Hours) {
		return reject(ReasonInvalidDuration)
	}
	if err := q.Start.Validate(); err != nil {
		return reject(ReasonInvalidTime)
	}
	if !q.Start.ExistsOn(q.Date, e.loc) {
		return reject(ReasonInvalidTime)
	}

	startMin := q.Start.Minutes()
	if startMin < policy.OpeningHour*60 {
		return reject(ReasonOutsideHours)
	}
	// Окончание ровно в час закрытия допустимо
	if startMin+q.Hours*60 > policy.ClosingHour*60 {
		return reject(ReasonPastClosing)
	}

	start, end := e.CandidateInterval(q.Date, q.Start, q.Hours)

	if e.Day(q.Date).Equal(e.Today(q.Now)) && start.Before(q.Now.Add(domain.MinNotice)) {
		return reject(ReasonTooSoon)
	}

	if q.Resource != nil && occ.busy(q.Resource.SpaceIDs, start, end) {
		return reject(ReasonConflict)
	}
	return allow()
}
