package customerservice

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customerservice client: customer not found")

	// ErrVehicleNotFound возвращается, когда у клиента нет выбранного автомобиля
	ErrVehicleNotFound = errors.New("customerservice client: customer has no selected vehicle")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CustomerService недоступен и бронирование можно создать
	// без денормализации данных автомобиля.
	ErrServiceDegraded = errors.New("customerservice unavailable: graceful degradation applied")
)
