package delete_time_window

import "context"

type ScheduleService interface {
	Delete(ctx context.Context, actorID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
