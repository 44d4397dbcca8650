package list_customers

import (
	"errors"
	"net/http"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgAdminRequired = "операция доступна только администратору студии"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/customers - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListCustomers(r.Context(), actorID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAdminRequired):
			h.logger.Warn("GET /admin/customers - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		default:
			h.logger.Error("GET /admin/customers - Failed to list customers: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/customers - Customers retrieved successfully: actor_id=%d, count=%d",
		actorID, len(result.Customers))
	handlers.RespondData(w, http.StatusOK, result)
}
