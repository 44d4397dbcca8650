package create_booking

import (
	"errors"
	"net/http"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	createBooking "github.com/glossline/detailing-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCustomerNotFound   = "клиент не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotBookable = "услуга недоступна для записи"
	msgWindowNotFound     = "окно расписания не найдено"
	msgWindowDateMismatch = "окно расписания относится к другой дате"
	msgDurationTooLong    = "услуга не помещается в выбранное окно"
	msgWindowFull         = "в выбранном окне не осталось мест"
	msgSlotAlreadyBooked  = "выбранный слот уже занят"
	msgTimeOverlap        = "выбранное время пересекается с существующей записью"
	msgSlotContended      = "слот прямо сейчас оформляет другой клиент, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d: %v", customerID, err)
			handlers.RespondInvalidInput(w, err.Error())

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotBookable):
			h.logger.Warn("POST /bookings - Service not bookable: service_id=%d", req.ServiceID)
			handlers.RespondInvalidInput(w, msgServiceNotBookable)

		case errors.Is(err, createBooking.ErrWindowNotFound):
			h.logger.Warn("POST /bookings - Window not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, createBooking.ErrWindowDateMismatch):
			h.logger.Warn("POST /bookings - Window date mismatch: customer_id=%d", customerID)
			handlers.RespondInvalidInput(w, msgWindowDateMismatch)

		case errors.Is(err, createBooking.ErrDurationTooLong):
			h.logger.Warn("POST /bookings - Duration too long: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgDurationTooLong)

		case errors.Is(err, createBooking.ErrWindowFull):
			h.logger.Warn("POST /bookings - Window full: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgWindowFull)

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotBooked, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrTimeOverlap):
			h.logger.Warn("POST /bookings - Time overlap: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeOverlapDetected, msgTimeOverlap)

		case errors.Is(err, createBooking.ErrSlotContended):
			h.logger.Warn("POST /bookings - Slot contended: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTimeSlotUnavailable, msgSlotContended)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, ref=%s, customer_id=%d",
		result.ID, result.Reference, customerID)
	handlers.RespondData(w, http.StatusCreated, FromUseCaseResponse(result))
}
