package models

import (
	"errors"
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            int64   `json:"-"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	ActorID int64  `json:"-"`
	Status  string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение истории бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"-"`
	ActorID    int64   `json:"-"`
	Status     *string `json:"status,omitempty"`
}

// ListBookingsRequest админский запрос на список бронирований с фильтрацией
type ListBookingsRequest struct {
	ActorID         int64      `json:"-"`
	CustomerID      *int64     `json:"customer_id,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"include_inactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID:      r.CustomerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	CustomerID   int64  `json:"customer_id"`
	ServiceID    int64  `json:"service_id"`
	Date         string `json:"date"`       // "2025-10-15"
	StartTime    string `json:"start_time"` // "10:00"
	EndTime      string `json:"end_time"`   // "11:00"
	TimeWindowID *int64 `json:"time_window_id,omitempty"`
	Status       string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	VehicleMake  *string `json:"vehicle_make,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CustomerSummary клиент студии с агрегатами по бронированиям
type CustomerSummary struct {
	CustomerID    int64   `json:"customer_id"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	TotalBookings int     `json:"total_bookings"`
	LastBooked    string  `json:"last_booked"` // "2025-10-15"
}

// CustomerListResponse ответ со списком клиентов студии
type CustomerListResponse struct {
	Customers []CustomerSummary `json:"customers"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		CustomerID:   b.CustomerID,
		ServiceID:    b.ServiceID,
		Date:         b.Date.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		TimeWindowID: b.TimeWindowID,
		Status:       string(b.Status),

		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		VehicleMake:  b.VehicleMake,
		VehicleModel: b.VehicleModel,
		VehiclePlate: b.VehiclePlate,
		Notes:        b.Notes,

		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		formatted := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус с валидацией
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return domain.BookingStatus(s), nil
}
