package create_service

import "github.com/glossline/detailing-booking-service/internal/service/catalog/models"

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (r *CreateServiceRequest) ToServiceRequest(actorID int64) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		ActorID:         actorID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}
