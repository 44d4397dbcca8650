package update_time_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/service/schedule"
)

const (
	msgInvalidWindowID    = "некорректный ID окна расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAdminRequired      = "операция доступна только администратору студии"
	msgNotFound           = "окно расписания не найдено"
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

// Handle PATCH /api/v1/admin/time-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/time-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondValidationError(w, msgInvalidWindowID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/time-windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/time-windows/{id} - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), windowID, req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAdminRequired):
			h.logger.Warn("PATCH /admin/time-windows/{id} - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("PATCH /admin/time-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/time-windows/{id} - Invalid window data: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInvalidInput(w, msgInvalidWindowData)

		default:
			h.logger.Error("PATCH /admin/time-windows/{id} - Failed to update window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/time-windows/{id} - Window updated successfully: window_id=%d, actor_id=%d",
		windowID, actorID)
	handlers.RespondData(w, http.StatusOK, result)
}
