package models

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна расписания
type CreateWindowRequest struct {
	ActorID     int64     `json:"-"`
	Date        time.Time `json:"-"`
	StartTime   string    `json:"start_time"` // "10:00"
	EndTime     string    `json:"end_time"`   // "11:30"
	MaxBookings int       `json:"max_bookings"`
}

// UpdateWindowRequest запрос на изменение окна расписания
// Поля-указатели: nil означает "оставить без изменений"
type UpdateWindowRequest struct {
	ActorID     int64   `json:"-"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	MaxBookings *int    `json:"max_bookings,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна расписания
type WindowResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`       // "2025-10-15"
	StartTime   string    `json:"start_time"` // "10:00"
	EndTime     string    `json:"end_time"`   // "11:30"
	MaxBookings int       `json:"max_bookings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WindowListResponse ответ со списком окон на дату
type WindowListResponse struct {
	Date    string           `json:"date"`
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.TimeWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:          w.ID,
		Date:        w.Date.Format(domain.DateFormat),
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		MaxBookings: w.MaxBookings,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список окон в DTO
func FromDomainWindowList(date time.Time, windows []domain.TimeWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Date:    date.Format(domain.DateFormat),
		Windows: make([]WindowResponse, 0, len(windows)),
	}
	for i := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(&windows[i]))
	}
	return resp
}

// ToTimeString конвертирует строку "HH:MM" с валидацией
func ToTimeString(s string) (types.TimeString, error) {
	return types.NewTimeStringFromString(s)
}
