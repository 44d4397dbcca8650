package create_booking

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
//
// Бронирование создается в одном из двух режимов:
//   - привязанное к окну: указан TimeWindowID, услуга занимает начало окна;
//   - свободное: указано StartTime, бронирование не связано с окном.
type Request struct {
	CustomerID   int64             // ID клиента (из заголовка X-User-ID)
	ServiceID    int64             // ID услуги из каталога
	Date         time.Time         // Дата бронирования (без времени)
	TimeWindowID *int64            // Окно расписания; nil = свободное бронирование
	StartTime    *types.TimeString // Время начала для свободного бронирования
	Notes        *string           // Заметки клиента (опционально)
}

// Tied возвращает true для бронирования, привязанного к окну расписания
func (r *Request) Tied() bool {
	return r.TimeWindowID != nil
}

// Response модель ответа с созданным бронированием
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
	VehicleMake  *string
	VehicleModel *string
	VehiclePlate *string
	Notes        *string
	CreatedAt    time.Time
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
		VehicleMake:  b.VehicleMake,
		VehicleModel: b.VehicleModel,
		VehiclePlate: b.VehiclePlate,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
