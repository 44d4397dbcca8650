package list_customers

import (
	"context"

	"github.com/glossline/detailing-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	ListCustomers(ctx context.Context, actorID int64) (*models.CustomerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
