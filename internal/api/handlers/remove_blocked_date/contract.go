package remove_blocked_date

import "context"

type FacilityService interface {
	RemoveBlockedDate(ctx context.Context, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
