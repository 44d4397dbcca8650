package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/infra/slotlock"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	windowRepo     WindowRepository
	catalogRepo    CatalogRepository
	customerClient CustomerServiceClient
	txManager      TransactionManager
	locker         SlotLocker
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	windowRepo WindowRepository,
	catalogRepo CatalogRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	locker SlotLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		windowRepo:     windowRepo,
		catalogRepo:    catalogRepo,
		customerClient: customerClient,
		txManager:      txManager,
		locker:         locker,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// поэтому два конкурентных запроса не могут занять последнее место в окне.
// Блокировка в Redis перед транзакцией снижает число retry при конкуренции
// за один слот, но корректность от нее не зависит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, tied=%v",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Tied())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиента
	if _, err := uc.customerClient.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 3. Получаем услугу из каталога
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	// 4. Получаем выбранный автомобиль клиента
	// При недоступности CustomerService бронирование создается без данных автомобиля
	vehicle, err := uc.customerClient.GetSelectedVehicleWithGracefulDegradation(ctx, req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, customerClient.ErrVehicleNotFound):
			vehicle = nil
		case errors.Is(err, customerClient.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: proceeding without vehicle data for customer id=%d: %v",
				req.CustomerID, err)
			vehicle = nil
		default:
			uc.logger.Error("CreateBooking: failed to get selected vehicle for customer id=%d: %v",
				req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get selected vehicle: %v", ErrInternal, err)
		}
	}

	// 5. Выбираем ключ блокировки: конкретное окно или вся дата для свободных бронирований
	dateStr := req.Date.Format(domain.DateFormat)
	lockKey := slotlock.DateKey(dateStr)
	if req.Tied() {
		lockKey = slotlock.SlotKey(dateStr, *req.TimeWindowID)
	}

	var result *domain.Booking

	err = uc.locker.WithLock(ctx, lockKey, func(lockCtx context.Context) error {
		// 6. Проверка доступности и вставка в сериализуемой транзакции
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			created, err := uc.createInTx(txCtx, req, service, vehicle)
			if err != nil {
				return err
			}
			result = created
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, slotlock.ErrLockNotAcquired) {
			uc.logger.Warn("CreateBooking: lock %s is held by another request", lockKey)
			return nil, ErrSlotContended
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s", result.ID, result.Reference)

	return toResponse(result), nil
}

// createInTx выполняет авторитетную проверку доступности и вставку
// Вызывается только внутри сериализуемой транзакции.
func (uc *UseCase) createInTx(
	txCtx context.Context,
	req *Request,
	service *domain.DetailingService,
	vehicle *customerClient.Vehicle,
) (*domain.Booking, error) {
	// Все занимающие время бронирования на дату, с блокировкой строк (FOR UPDATE)
	bookings, err := uc.bookingRepo.GetConflictingByDate(txCtx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings for date: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	var (
		startTime types.TimeString
		endTime   types.TimeString
		windowID  *int64
	)

	if req.Tied() {
		window, err := uc.windowRepo.GetByID(txCtx, *req.TimeWindowID)
		if err != nil {
			if errors.Is(err, windowRepo.ErrWindowNotFound) {
				uc.logger.Warn("CreateBooking: window id=%d not found", *req.TimeWindowID)
				return nil, ErrWindowNotFound
			}
			uc.logger.Error("CreateBooking: failed to get window id=%d: %v", *req.TimeWindowID, err)
			return nil, fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		if !window.Date.Equal(req.Date) {
			uc.logger.Warn("CreateBooking: window id=%d is on %s, requested %s",
				window.ID, window.Date.Format(domain.DateFormat), req.Date.Format(domain.DateFormat))
			return nil, ErrWindowDateMismatch
		}

		eval := domain.EvaluateWindow(*window, bookings, service.DurationMinutes)
		if !eval.FitsDuration {
			uc.logger.Warn("CreateBooking: service duration %d does not fit window id=%d",
				service.DurationMinutes, window.ID)
			return nil, ErrDurationTooLong
		}
		if !eval.HasCapacity {
			uc.logger.Warn("CreateBooking: window id=%d is full (%d/%d)",
				window.ID, domain.CountTied(window.ID, bookings), window.MaxBookings)
			return nil, ErrWindowFull
		}
		if eval.HasConflict {
			if domain.CountTied(window.ID, bookings) > 0 {
				uc.logger.Warn("CreateBooking: window id=%d already has a tied booking", window.ID)
				return nil, ErrSlotAlreadyBooked
			}
			uc.logger.Warn("CreateBooking: window id=%d overlaps an existing booking", window.ID)
			return nil, ErrTimeOverlap
		}

		startTime = window.StartTime
		endTime = eval.ServiceEnd
		windowID = &window.ID
	} else {
		startTime = *req.StartTime

		end, err := startTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			uc.logger.Warn("CreateBooking: start %s + %d minutes is out of day range",
				startTime, service.DurationMinutes)
			return nil, fmt.Errorf("%w: service does not fit into the day", ErrInvalidInput)
		}
		endTime = end

		if overlapping := domain.CountOverlapping(startTime, service.DurationMinutes, bookings); overlapping > 0 {
			uc.logger.Warn("CreateBooking: interval %s-%s overlaps %d booking(s)",
				startTime, endTime, overlapping)
			return nil, ErrTimeOverlap
		}
	}

	booking := &domain.Booking{
		Reference:    uuid.NewString(),
		CustomerID:   req.CustomerID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		StartTime:    startTime,
		EndTime:      endTime,
		TimeWindowID: windowID,
		Status:       domain.StatusConfirmed,
		// Денормализация данных услуги
		ServiceName:  service.Name,
		ServicePrice: service.Price,
		// Заметки
		Notes: req.Notes,
	}

	// Денормализация данных автомобиля (может отсутствовать)
	if vehicle != nil {
		booking.VehicleMake = &vehicle.Make
		booking.VehicleModel = &vehicle.Model
		booking.VehiclePlate = &vehicle.LicensePlate
	}

	created, err := uc.bookingRepo.Create(txCtx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return created, nil
}
