package domain

import (
	"time"

	"github.com/glossline/detailing-booking-service/pkg/types"
)

// TimeWindow represents an admin-defined bookable interval on a calendar date
type TimeWindow struct {
	ID          int64
	Date        time.Time // дата без времени
	StartTime   types.TimeString
	EndTime     types.TimeString
	MaxBookings int // вместимость окна; 0 = окно никогда не доступно
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate проверяет инвариант окна: start_time < end_time, вместимость в допустимых границах
func (w *TimeWindow) Validate() error {
	if err := w.StartTime.Validate(); err != nil {
		return err
	}
	if err := w.EndTime.Validate(); err != nil {
		return err
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return ErrWindowInverted
	}
	if w.MaxBookings < MinWindowCapacity || w.MaxBookings > MaxWindowCapacity {
		return ErrWindowCapacityRange
	}
	return nil
}

// DurationMinutes возвращает длину окна в минутах
func (w *TimeWindow) DurationMinutes() int {
	start, err := w.StartTime.MinutesSinceMidnight()
	if err != nil {
		return 0
	}
	end, err := w.EndTime.MinutesSinceMidnight()
	if err != nil {
		return 0
	}
	return end - start
}
