package create_service

import (
	"errors"
	"net/http"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAdminRequired      = "операция доступна только администратору студии"
	msgInvalidServiceData = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAdminRequired):
			h.logger.Warn("POST /admin/services - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/services - Invalid service data: %v", err)
			handlers.RespondInvalidInput(w, msgInvalidServiceData)

		default:
			h.logger.Error("POST /admin/services - Failed to create service: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Service created successfully: service_id=%d, actor_id=%d",
		result.ID, actorID)
	handlers.RespondData(w, http.StatusCreated, result)
}
