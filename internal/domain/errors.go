package domain

import "errors"

var (
	// ErrWindowInverted возвращается, когда start_time окна не раньше end_time
	ErrWindowInverted = errors.New("domain: window start_time must be before end_time")

	// ErrWindowCapacityRange возвращается при недопустимой вместимости окна
	ErrWindowCapacityRange = errors.New("domain: window max_bookings is out of range")
)
