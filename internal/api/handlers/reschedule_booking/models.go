package reschedule_booking

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	rescheduleBooking "github.com/glossline/detailing-booking-service/internal/usecase/reschedule_booking"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date         string  `json:"date"`                     // "2025-10-15"
	TimeWindowID *int64  `json:"time_window_id,omitempty"` // перенос в окно расписания
	StartTime    *string `json:"start_time,omitempty"`     // перенос на свободное время, "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	CustomerID   int64   `json:"customer_id"`
	ServiceID    int64   `json:"service_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TimeWindowID *int64  `json:"time_window_id,omitempty"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	Notes        *string `json:"notes,omitempty"`
	UpdatedAt    string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, actorID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	var startTime *types.TimeString
	if r.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = &parsed
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		ActorID:      actorID,
		Date:         date,
		TimeWindowID: r.TimeWindowID,
		StartTime:    startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		Reference:    resp.Reference,
		CustomerID:   resp.CustomerID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		TimeWindowID: resp.TimeWindowID,
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
