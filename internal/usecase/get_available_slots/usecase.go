package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
)

// UseCase use case получения доступных окон для бронирования
// Проверка доступности здесь рекомендательная: слот может быть занят между
// чтением и записью. Авторитетная проверка тех же правил выполняется внутри
// сериализуемой транзакции при создании/переносе бронирования.
type UseCase struct {
	windowRepo  WindowRepository
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windowRepo WindowRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		windowRepo:  windowRepo,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, duration=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	// 3. Длительность: либо запрошенная, либо из каталога
	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.DurationMinutes
	}

	// 4. Получаем окна расписания на дату (отсортированы по start_time)
	windows, err := uc.windowRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	// 5. Получаем бронирования, занимающие время на эту дату
	bookings, err := uc.bookingRepo.GetConflictingByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Проверяем каждое окно и отдаем только доступные
	available := domain.AvailableWindows(windows, bookings, duration)

	slots := make([]Slot, len(available))
	for i, result := range available {
		slots[i] = fromDomain(result)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d windows available for service=%d, date=%s, duration=%d",
		len(slots), len(windows), req.ServiceID, req.Date.Format(domain.DateFormat), duration)

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
