package reschedule_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actor_id must be positive", ErrInvalidInput)
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

	return nil
}
