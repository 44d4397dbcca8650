package domain

import (
	"time"

	"github.com/glossline/detailing-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking represents a detailing appointment in the system
type Booking struct {
	ID           int64
	Reference    string // публичный идентификатор (uuid), отдается клиенту
	CustomerID   int64
	ServiceID    int64
	Date         time.Time // дата без времени
	StartTime    types.TimeString
	EndTime      types.TimeString
	TimeWindowID *int64 // NULL = бронирование не привязано к окну
	Status       BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	VehicleMake  *string
	VehicleModel *string
	VehiclePlate *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking occupies time in the schedule
// (conflict and capacity checks only count these statuses)
func (b *Booking) BlocksSlot() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// IsActive returns true if the booking has not reached a terminal state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled &&
		b.Status != StatusRescheduled &&
		b.Status != StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTiedTo returns true if the booking is explicitly tied to the given window
func (b *Booking) IsTiedTo(windowID int64) bool {
	return b.TimeWindowID != nil && *b.TimeWindowID == windowID
}

// ValidStatus проверяет, что строка является допустимым статусом бронирования
func ValidStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// ValidTransition проверяет допустимость перехода статуса
// Бронирования никогда не удаляются физически, только меняют статус.
func ValidTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusInProgress || to == StatusCompleted ||
			to == StatusCancelled || to == StatusRescheduled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	default:
		// Терминальные статусы не меняются
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	IncludeInactive bool           // Включать ли отмененные/перенесенные
}
