package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается при попытке перенести чужое бронирование
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается, когда статус бронирования не допускает перенос
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrWindowNotFound возвращается, когда целевое окно не найдено
	ErrWindowNotFound = errors.New("reschedule_booking: time window not found")

	// ErrWindowDateMismatch возвращается, когда целевое окно относится к другой дате
	ErrWindowDateMismatch = errors.New("reschedule_booking: time window belongs to another date")

	// ErrDurationTooLong возвращается, когда услуга не помещается в целевое окно
	ErrDurationTooLong = errors.New("reschedule_booking: service does not fit into the window")

	// ErrWindowFull возвращается, когда в целевом окне не осталось мест
	ErrWindowFull = errors.New("reschedule_booking: time window has no remaining capacity")

	// ErrSlotAlreadyBooked возвращается, когда целевое окно уже занято
	ErrSlotAlreadyBooked = errors.New("reschedule_booking: slot is already booked")

	// ErrTimeOverlap возвращается при пересечении с существующим бронированием
	ErrTimeOverlap = errors.New("reschedule_booking: requested interval overlaps an existing booking")

	// ErrSlotContended возвращается, когда слот прямо сейчас оформляет другой клиент
	ErrSlotContended = errors.New("reschedule_booking: slot is being booked by another request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
