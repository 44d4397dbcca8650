package update_time_window

import (
	"context"

	"github.com/glossline/detailing-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	Update(ctx context.Context, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
