package get_available_slots

import (
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Некорректная длительность и отсутствующая дата отсекаются на уровне HTTP,
// здесь контракт проверяется повторно.
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > 0 && req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration exceeds %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	return nil
}
