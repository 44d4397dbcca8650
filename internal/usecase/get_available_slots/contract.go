package get_available_slots

import (
	"context"
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
)

// WindowRepository интерфейс репозитория окон расписания
type WindowRepository interface {
	// GetByDate получает окна на дату, отсортированные по start_time
	GetByDate(ctx context.Context, date time.Time) ([]domain.TimeWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetConflictingByDate получает бронирования на дату со статусами confirmed/in_progress
	GetConflictingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DetailingService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
