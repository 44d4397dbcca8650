package create_time_window

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/service/schedule/models"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxBookings int    `json:"max_bookings"`
}

func (r *CreateWindowRequest) ToServiceRequest(actorID int64) (*models.CreateWindowRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateWindowRequest{
		ActorID:     actorID,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		MaxBookings: r.MaxBookings,
	}, nil
}
