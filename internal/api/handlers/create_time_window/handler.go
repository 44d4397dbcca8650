package create_time_window

import (
	"errors"
	"net/http"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAdminRequired      = "операция доступна только администратору студии"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWindowData  = "некорректные данные окна расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/time-windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/time-windows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/time-windows - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /admin/time-windows - Invalid date format: date=%s, error=%v", req.Date, err)
		handlers.RespondValidationError(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAdminRequired):
			h.logger.Warn("POST /admin/time-windows - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/time-windows - Invalid window data: %v", err)
			handlers.RespondInvalidInput(w, msgInvalidWindowData)

		default:
			h.logger.Error("POST /admin/time-windows - Failed to create window: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/time-windows - Window created successfully: window_id=%d, date=%s, actor_id=%d",
		result.ID, result.Date, actorID)
	handlers.RespondData(w, http.StatusCreated, result)
}
