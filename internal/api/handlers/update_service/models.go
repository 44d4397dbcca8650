package update_service

import "github.com/glossline/detailing-booking-service/internal/service/catalog/models"

// UpdateServiceRequest HTTP request model
// nil-поля не изменяются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

func (r *UpdateServiceRequest) ToServiceRequest(actorID int64) *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		ActorID:         actorID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Active:          r.Active,
	}
}
