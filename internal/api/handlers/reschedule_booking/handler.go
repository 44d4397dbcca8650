package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	rescheduleBooking "github.com/glossline/detailing-booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "бронирование в текущем статусе нельзя перенести"
	msgWindowNotFound     = "окно расписания не найдено"
	msgWindowDateMismatch = "окно расписания относится к другой дате"
	msgDurationTooLong    = "услуга не помещается в выбранное окно"
	msgWindowFull         = "в выбранном окне не осталось мест"
	msgSlotAlreadyBooked  = "выбранный слот уже занят"
	msgTimeOverlap        = "выбранное время пересекается с существующей записью"
	msgSlotContended      = "слот прямо сейчас оформляет другой клиент, повторите попытку"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondValidationError(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondInvalidInput(w, err.Error())

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d, actor_id=%d",
				bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("POST /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondInvalidInput(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrWindowNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Window not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, rescheduleBooking.ErrWindowDateMismatch):
			h.logger.Warn("POST /bookings/{id}/reschedule - Window date mismatch: booking_id=%d", bookingID)
			handlers.RespondInvalidInput(w, msgWindowDateMismatch)

		case errors.Is(err, rescheduleBooking.ErrDurationTooLong):
			h.logger.Warn("POST /bookings/{id}/reschedule - Duration too long: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgDurationTooLong)

		case errors.Is(err, rescheduleBooking.ErrWindowFull):
			h.logger.Warn("POST /bookings/{id}/reschedule - Window full: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgWindowFull)

		case errors.Is(err, rescheduleBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot already booked: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotBooked, msgSlotAlreadyBooked)

		case errors.Is(err, rescheduleBooking.ErrTimeOverlap):
			h.logger.Warn("POST /bookings/{id}/reschedule - Time overlap: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeOverlapDetected, msgTimeOverlap)

		case errors.Is(err, rescheduleBooking.ErrSlotContended):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot contended: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgSlotContended)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, actor_id=%d",
		bookingID, actorID)
	handlers.RespondData(w, http.StatusOK, FromUseCaseResponse(result))
}
