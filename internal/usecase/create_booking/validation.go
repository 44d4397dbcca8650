package create_booking

import (
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
//
// Режимы взаимоисключающие: либо окно, либо свободное время начала.
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeWindowID == nil && req.StartTime == nil {
		return fmt.Errorf("%w: either time_window_id or start_time is required", ErrInvalidInput)
	}

	if req.TimeWindowID != nil && req.StartTime != nil {
		return fmt.Errorf("%w: time_window_id and start_time are mutually exclusive", ErrInvalidInput)
	}

	if req.TimeWindowID != nil && *req.TimeWindowID <= 0 {
		return fmt.Errorf("%w: time_window_id must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start_time must be in HH:MM format", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
