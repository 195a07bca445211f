package domain

import "time"

// Правила бронирования
const (
	HorizonMonths       = 4
	MinNotice           = 60 * time.Minute
	CancellationWindow  = 24 * time.Hour
	ReminderWindowStart = 23 * time.Hour
	ReminderWindowEnd   = 24 * time.Hour

	MinDurationHours = 1
	MaxDurationHours = 3
)

// Значения политики по умолчанию
const (
	DefaultOpeningHour           = 8
	DefaultClosingHour           = 21
	DefaultPendingTimeoutMinutes = 30
)

// Ограничения валидации
const (
	MaxBlockedReasonLength = 255
	DefaultListLimit       = 50
	MaxListLimit           = 500
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllowedDurations допустимые длительности бронирования в часах
var AllowedDurations = []int{1, 2, 3}

// IsAllowedDuration проверяет длительность бронирования
func IsAllowedDuration(hours int) bool {
	return hours >= MinDurationHours && hours <= MaxDurationHours
}
