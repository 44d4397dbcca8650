package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MinWindowCapacity = 0 // окно с нулевой вместимостью допустимо, но никогда не доступно
	MaxWindowCapacity = 100

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceNameLength        = 200
	MaxServiceDescriptionLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictStatuses статусы бронирований, занимающие время в расписании
// Используются при проверке пересечений и вместимости окон.
var ConflictStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
}

// HiddenByDefaultStatuses статусы, скрываемые дефолтным фильтром админского списка.
// Завершенные визиты остаются в выдаче: это история работ студии.
// Не путать с Booking.IsActive, где completed тоже терминальный.
var HiddenByDefaultStatuses = []BookingStatus{
	StatusCancelled,
	StatusRescheduled,
}
