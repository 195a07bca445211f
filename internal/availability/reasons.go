package availability

// Reason машиночитаемая причина отказа
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonDateInPast      Reason = "date_in_past"
	ReasonHorizonExceeded Reason = "horizon_exceeded"
	ReasonDayClosed       Reason = "day_closed"
	ReasonDateBlocked     Reason = "date_blocked"
	ReasonInvalidDuration Reason = "invalid_duration"
	ReasonInvalidTime     Reason = "invalid_time"
	ReasonOutsideHours    Reason = "outside_hours"
	ReasonPastClosing     Reason = "past_closing"
	ReasonTooSoon         Reason = "too_soon"
	ReasonConflict        Reason = "conflict"
)

// IsPolicy true для нарушений правил площадки (все причины, кроме конфликта)
func (r Reason) IsPolicy() bool {
	return r != ReasonNone && r != ReasonConflict
}

// Decision результат проверки слота или дня
type Decision struct {
	Bookable bool
	Reason   Reason
}

func allow() Decision {
	return Decision{Bookable: true}
}

func reject(r Reason) Decision {
	return Decision{Reason: r}
}

// Message текст причины для клиента
func (r Reason) Message() string {
	switch r {
	case ReasonDateInPast:
		return "дата бронирования уже прошла"
	case ReasonHorizonExceeded:
		return "бронирование открыто не более чем на 4 месяца вперед"
	case ReasonDayClosed:
		return "площадка не работает в этот день недели"
	case ReasonDateBlocked:
		return "площадка закрыта в эту дату"
	case ReasonInvalidDuration:
		return "длительность должна быть 1, 2 или 3 часа"
	case ReasonInvalidTime:
		return "некорректное время начала"
	case ReasonOutsideHours:
		return "время начала раньше открытия площадки"
	case ReasonPastClosing:
		return "бронирование должно закончиться до закрытия площадки"
	case ReasonTooSoon:
		return "бронирование на сегодня возможно не позднее чем за 60 минут до начала"
	case ReasonConflict:
		return "слот уже занят, выберите другое время"
	default:
		return ""
	}
}
