package list_time_windows

import (
	"context"
	"time"

	"github.com/glossline/detailing-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ListByDate(ctx context.Context, actorID int64, date time.Time) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
