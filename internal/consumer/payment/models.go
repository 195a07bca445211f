package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Event сигнал процессора: {event, data:{booking_id, charge_id, ...}}.
// Плоский вариант с полями на верхнем уровне тоже принимается.
type Event struct {
	Event string     `json:"event"`
	Data  *EventData `json:"data"`
	EventData
}

// EventData полезная нагрузка сигнала
type EventData struct {
	BookingID      bookingID `json:"booking_id"`
	ChargeID       string    `json:"charge_id"`
	Amount         int64     `json:"amount,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	FailureCode    string    `json:"failure_code,omitempty"`
	FailureMessage string    `json:"failure_message,omitempty"`
}

// payload данные из вложенного или плоского варианта
func (e *Event) payload() EventData {
	if e.Data != nil {
		return *e.Data
	}
	return e.EventData
}

// bookingID принимает число или строку с числом
type bookingID int64

func (b *bookingID) UnmarshalJSON(raw []byte) error {
	raw = bytes.Trim(raw, `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*b = 0
		return nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("booking_id: %w", err)
	}
	*b = bookingID(v)
	return nil
}

func decodeEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
