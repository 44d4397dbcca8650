package reschedule_booking

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// Request модель запроса на перенос бронирования
//
// Целевой слот задается так же, как при создании: либо окно расписания,
// либо свободное время начала. Длительность услуги сохраняется исходная.
type Request struct {
	BookingID    int64             // ID переносимого бронирования
	ActorID      int64             // ID клиента, выполняющего запрос (из заголовка X-User-ID)
	Date         time.Time         // Новая дата
	TimeWindowID *int64            // Целевое окно; nil = свободное бронирование
	StartTime    *types.TimeString // Время начала для свободного бронирования
}

// Tied возвращает true, если целевой слот привязан к окну расписания
func (r *Request) Tied() bool {
	return r.TimeWindowID != nil
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID           int64
	Reference    string
	CustomerID   int64
	ServiceID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	TimeWindowID *int64
	Status       string
	ServiceName  string
	ServicePrice float64
	Notes        *string
	UpdatedAt    time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		Reference:    b.Reference,
		CustomerID:   b.CustomerID,
		ServiceID:    b.ServiceID,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TimeWindowID: b.TimeWindowID,
		Status:       string(b.Status),
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		Notes:        b.Notes,
		UpdatedAt:    b.UpdatedAt,
	}
}
