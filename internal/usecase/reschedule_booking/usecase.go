package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/infra/slotlock"
	bookingRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/booking"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	bookingRepo    BookingRepository
	windowRepo     WindowRepository
	customerClient CustomerServiceClient
	txManager      TransactionManager
	locker         SlotLocker
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	windowRepo WindowRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	locker SlotLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		windowRepo:     windowRepo,
		customerClient: customerClient,
		txManager:      txManager,
		locker:         locker,
		logger:         logger,
	}
}

// Execute выполняет use case переноса бронирования
//
// Перенос меняет дату, время и окно существующей записи, сохраняя ее id,
// reference и исходную длительность услуги. Проверка целевого слота и
// обновление выполняются в одной сериализуемой транзакции, как при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, date=%s, tied=%v",
		req.BookingID, req.ActorID, req.Date.Format(domain.DateFormat), req.Tied())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем права запрашивающего
	actor, err := uc.customerClient.GetCustomer(ctx, req.ActorID)
	if err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("RescheduleBooking: actor id=%d not found", req.ActorID)
			return nil, ErrAccessDenied
		}
		uc.logger.Error("RescheduleBooking: failed to get actor id=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}

	// 3. Блокируем целевой слот
	dateStr := req.Date.Format(domain.DateFormat)
	lockKey := slotlock.DateKey(dateStr)
	if req.Tied() {
		lockKey = slotlock.SlotKey(dateStr, *req.TimeWindowID)
	}

	var result *domain.Booking

	err = uc.locker.WithLock(ctx, lockKey, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			updated, err := uc.rescheduleInTx(txCtx, req, actor)
			if err != nil {
				return err
			}
			result = updated
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, slotlock.ErrLockNotAcquired) {
			uc.logger.Warn("RescheduleBooking: lock %s is held by another request", lockKey)
			return nil, ErrSlotContended
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s-%s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime, result.EndTime)

	return toResponse(result), nil
}

// rescheduleInTx выполняет проверку целевого слота и перенос
// Вызывается только внутри сериализуемой транзакции.
func (uc *UseCase) rescheduleInTx(txCtx context.Context, req *Request, actor *customerClient.Customer) (*domain.Booking, error) {
	// Бронирование с блокировкой строки (FOR UPDATE)
	booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.ActorID && !actor.IsAdmin() {
		uc.logger.Warn("RescheduleBooking: actor id=%d is not the owner of booking id=%d",
			req.ActorID, booking.ID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
			booking.ID, booking.Status)
		return nil, ErrCannotReschedule
	}

	duration, err := bookingDuration(booking)
	if err != nil {
		uc.logger.Error("RescheduleBooking: booking id=%d has invalid time range: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: invalid booking time range: %v", ErrInternal, err)
	}

	// Занимающие время бронирования на целевую дату, без самого переносимого
	bookings, err := uc.bookingRepo.GetConflictingByDate(txCtx, req.Date)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get bookings for date: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	others := excludeBooking(bookings, booking.ID)

	var (
		startTime types.TimeString
		endTime   types.TimeString
		windowID  *int64
	)

	if req.Tied() {
		window, err := uc.windowRepo.GetByID(txCtx, *req.TimeWindowID)
		if err != nil {
			if errors.Is(err, windowRepo.ErrWindowNotFound) {
				uc.logger.Warn("RescheduleBooking: window id=%d not found", *req.TimeWindowID)
				return nil, ErrWindowNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get window id=%d: %v", *req.TimeWindowID, err)
			return nil, fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		if !window.Date.Equal(req.Date) {
			uc.logger.Warn("RescheduleBooking: window id=%d is on %s, requested %s",
				window.ID, window.Date.Format(domain.DateFormat), req.Date.Format(domain.DateFormat))
			return nil, ErrWindowDateMismatch
		}

		eval := domain.EvaluateWindow(*window, others, duration)
		if !eval.FitsDuration {
			uc.logger.Warn("RescheduleBooking: duration %d does not fit window id=%d", duration, window.ID)
			return nil, ErrDurationTooLong
		}
		if !eval.HasCapacity {
			uc.logger.Warn("RescheduleBooking: window id=%d is full", window.ID)
			return nil, ErrWindowFull
		}
		if eval.HasConflict {
			if domain.CountTied(window.ID, others) > 0 {
				uc.logger.Warn("RescheduleBooking: window id=%d already has a tied booking", window.ID)
				return nil, ErrSlotAlreadyBooked
			}
			uc.logger.Warn("RescheduleBooking: window id=%d overlaps an existing booking", window.ID)
			return nil, ErrTimeOverlap
		}

		startTime = window.StartTime
		endTime = eval.ServiceEnd
		windowID = &window.ID
	} else {
		startTime = *req.StartTime

		end, err := startTime.AddMinutes(duration)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: start %s + %d minutes is out of day range", startTime, duration)
			return nil, fmt.Errorf("%w: service does not fit into the day", ErrInvalidInput)
		}
		endTime = end

		if overlapping := domain.CountOverlapping(startTime, duration, others); overlapping > 0 {
			uc.logger.Warn("RescheduleBooking: interval %s-%s overlaps %d booking(s)",
				startTime, endTime, overlapping)
			return nil, ErrTimeOverlap
		}
	}

	if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.Date, startTime, endTime, windowID); err != nil {
		uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть актуальный updated_at
	updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to reload booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	return updated, nil
}

// bookingDuration возвращает исходную длительность бронирования в минутах
func bookingDuration(b *domain.Booking) (int, error) {
	start, err := b.StartTime.MinutesSinceMidnight()
	if err != nil {
		return 0, err
	}
	end, err := b.EndTime.MinutesSinceMidnight()
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("end_time %s is not after start_time %s", b.EndTime, b.StartTime)
	}
	return end - start, nil
}

// excludeBooking возвращает список без бронирования с указанным id
func excludeBooking(bookings []*domain.Booking, id int64) []*domain.Booking {
	others := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			others = append(others, b)
		}
	}
	return others
}
