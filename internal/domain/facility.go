package domain

import "time"

// FacilityPolicy расписание работы площадки (единственная запись)
type FacilityPolicy struct {
	OpeningHour int
	ClosingHour int

	SundayOpen    bool
	MondayOpen    bool
	TuesdayOpen   bool
	WednesdayOpen bool
	ThursdayOpen  bool
	FridayOpen    bool
	SaturdayOpen  bool

	UpdatedAt time.Time
	UpdatedBy *string
}

// DefaultFacilityPolicy политика, используемая при отсутствии записи в БД
func DefaultFacilityPolicy() FacilityPolicy {
	return FacilityPolicy{
		OpeningHour:   DefaultOpeningHour,
		ClosingHour:   DefaultClosingHour,
		SundayOpen:    true,
		MondayOpen:    true,
		TuesdayOpen:   true,
		WednesdayOpen: true,
		ThursdayOpen:  true,
		FridayOpen:    true,
		SaturdayOpen:  true,
	}
}

// IsOpenOn возвращает флаг работы для дня недели
func (p *FacilityPolicy) IsOpenOn(weekday time.Weekday) bool {
	switch weekday {
	case time.Sunday:
		return p.SundayOpen
	case time.Monday:
		return p.MondayOpen
	case time.Tuesday:
		return p.TuesdayOpen
	case time.Wednesday:
		return p.WednesdayOpen
	case time.Thursday:
		return p.ThursdayOpen
	case time.Friday:
		return p.FridayOpen
	case time.Saturday:
		return p.SaturdayOpen
	default:
		return false
	}
}

// OpenDays флаги работы в порядке Sunday..Saturday
func (p *FacilityPolicy) OpenDays() [7]bool {
	return [7]bool{
		p.SundayOpen, p.MondayOpen, p.TuesdayOpen, p.WednesdayOpen,
		p.ThursdayOpen, p.FridayOpen, p.SaturdayOpen,
	}
}

// SetOpenDays устанавливает флаги работы в порядке Sunday..Saturday
func (p *FacilityPolicy) SetOpenDays(days [7]bool) {
	p.SundayOpen = days[0]
	p.MondayOpen = days[1]
	p.TuesdayOpen = days[2]
	p.WednesdayOpen = days[3]
	p.ThursdayOpen = days[4]
	p.FridayOpen = days[5]
	p.SaturdayOpen = days[6]
}

// BlockedDate день, полностью закрытый для бронирования
type BlockedDate struct {
	Date      string // YYYY-MM-DD
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
