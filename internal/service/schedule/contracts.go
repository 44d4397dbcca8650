package schedule

import (
	"context"
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
)

// WindowRepository интерфейс репозитория окон расписания
type WindowRepository interface {
	Create(ctx context.Context, window *domain.TimeWindow) (*domain.TimeWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeWindow, error)
	GetByDate(ctx context.Context, date time.Time) ([]domain.TimeWindow, error)
	Update(ctx context.Context, window *domain.TimeWindow) (*domain.TimeWindow, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomer(ctx context.Context, customerID int64) (*customerservice.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
