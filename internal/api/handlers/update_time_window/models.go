package update_time_window

import "github.com/glossline/detailing-booking-service/internal/service/schedule/models"

// UpdateWindowRequest HTTP request model
// nil-поля не изменяются
type UpdateWindowRequest struct {
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	MaxBookings *int    `json:"max_bookings,omitempty"`
}

func (r *UpdateWindowRequest) ToServiceRequest(actorID int64) *models.UpdateWindowRequest {
	return &models.UpdateWindowRequest{
		ActorID:     actorID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		MaxBookings: r.MaxBookings,
	}
}
