package list_time_windows

import (
	"errors"
	"net/http"
	"time"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/service/schedule"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgAdminRequired = "операция доступна только администратору студии"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/admin/time-windows?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/time-windows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /admin/time-windows - Missing date")
		handlers.RespondInvalidInput(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/time-windows - Invalid date format: date=%s, error=%v", dateStr, err)
		handlers.RespondValidationError(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByDate(r.Context(), actorID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAdminRequired):
			h.logger.Warn("GET /admin/time-windows - Admin required: actor_id=%d", actorID)
			handlers.RespondAdminAccessDenied(w, msgAdminRequired)

		default:
			h.logger.Error("GET /admin/time-windows - Failed to list windows: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/time-windows - Windows retrieved successfully: date=%s, count=%d",
		dateStr, len(result.Windows))
	handlers.RespondData(w, http.StatusOK, result)
}
