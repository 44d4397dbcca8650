package delete_time_window

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
	msgInvalidWindowID = "некорректный ID окна расписания"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgAdminRequired   = "операция доступна только администратору студии"
	msgNotFound        = "окно расписания не найдено"
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

// Handle DELETE /api/v1/admin/time-windows/{windowId}
// Привязанные бронирования при удалении окна сохраняются (FK SET NULL)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/time-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondValidationError(w, msgInvalidWindowID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/time-windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), actorID, windowID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAdminRequired):
			h.logger.Warn("DELETE /admin/time-windows/{id} - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /admin/time-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/time-windows/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/time-windows/{id} - Window deleted successfully: window_id=%d, actor_id=%d",
		windowID, actorID)
	handlers.RespondData(w, http.StatusOK, map[string]interface{}{
		"id": windowID,
	})
}
