package create_booking

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден в CustomerService
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotBookable возвращается, когда услуга снята с продажи
	ErrServiceNotBookable = errors.New("create_booking: service is not bookable")

	// ErrWindowNotFound возвращается, когда окно расписания не найдено
	ErrWindowNotFound = errors.New("create_booking: time window not found")

	// ErrWindowDateMismatch возвращается, когда окно относится к другой дате
	ErrWindowDateMismatch = errors.New("create_booking: time window belongs to another date")

	// ErrDurationTooLong возвращается, когда услуга не помещается в окно
	ErrDurationTooLong = errors.New("create_booking: service does not fit into the window")

	// ErrWindowFull возвращается, когда в окне не осталось мест
	ErrWindowFull = errors.New("create_booking: time window has no remaining capacity")

	// ErrSlotAlreadyBooked возвращается, когда окно уже занято другим бронированием
	ErrSlotAlreadyBooked = errors.New("create_booking: slot is already booked")

	// ErrTimeOverlap возвращается при пересечении с существующим бронированием
	ErrTimeOverlap = errors.New("create_booking: requested interval overlaps an existing booking")

	// ErrSlotContended возвращается, когда слот прямо сейчас оформляет другой клиент
	ErrSlotContended = errors.New("create_booking: slot is being booked by another request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
