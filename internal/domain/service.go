package domain

import "time"

// DetailingService represents a priced catalog entry (wash, polish, ceramic, ...)
type DetailingService struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if the service can be booked by customers
func (s *DetailingService) IsBookable() bool {
	return s.Active && s.DurationMinutes > 0
}
