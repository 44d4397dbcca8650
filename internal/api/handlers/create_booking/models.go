package create_booking

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	createBooking "github.com/glossline/detailing-booking-service/internal/usecase/create_booking"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID    int64   `json:"service_id"`
	Date         string  `json:"date"`                     // "2025-10-15"
	TimeWindowID *int64  `json:"time_window_id,omitempty"` // запись в окно расписания
	StartTime    *string `json:"start_time,omitempty"`     // свободная запись, "10:00"
	Notes        *string `json:"notes,omitempty"`
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
	VehicleMake  *string `json:"vehicle_make,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
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

	return &createBooking.Request{
		CustomerID:   customerID,
		ServiceID:    r.ServiceID,
		Date:         date,
		TimeWindowID: r.TimeWindowID,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
		VehicleMake:  resp.VehicleMake,
		VehicleModel: resp.VehicleModel,
		VehiclePlate: resp.VehiclePlate,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
