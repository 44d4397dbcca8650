package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/schedule/models"
)

// Service сервис для работы с расписанием студии
type Service struct {
	windowRepo     WindowRepository
	customerClient CustomerServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	windowRepo WindowRepository,
	customerClient CustomerServiceClient,
	logger Logger,
) *Service {
	return &Service{
		windowRepo:     windowRepo,
		customerClient: customerClient,
		logger:         logger,
	}
}

// ListByDate возвращает окна расписания на дату, отсортированные по времени начала
// Доступно только администраторам студии; клиенты видят окна через endpoint доступности
func (s *Service) ListByDate(ctx context.Context, actorID int64, date time.Time) (*models.WindowListResponse, error) {
	s.logger.Info("ListByDate: fetching windows for date=%s by actor=%d",
		date.Format(domain.DateFormat), actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		return nil, err
	}

	windows, err := s.windowRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d windows", len(windows))
	return models.FromDomainWindowList(date, windows), nil
}

// Create создает окно расписания
// Доступно только администраторам студии
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: creating window on %s %s-%s by actor=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	window, err := buildWindow(req.Date, req.StartTime, req.EndTime, req.MaxBookings)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.windowRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// Update изменяет окно расписания
// Доступно только администраторам студии; nil-поля запроса не изменяются
// Существующие бронирования при изменении окна не трогаются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Update: updating window id=%d by actor=%d", id, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	window, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Update: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("Update: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.StartTime != nil {
		startTime, err := models.ToTimeString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time must be in HH:MM format", ErrInvalidInput)
		}
		window.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := models.ToTimeString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time must be in HH:MM format", ErrInvalidInput)
		}
		window.EndTime = endTime
	}
	if req.MaxBookings != nil {
		window.MaxBookings = *req.MaxBookings
	}

	if err := window.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.windowRepo.Update(ctx, window)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Update: window id=%d not found during update", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("Update: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated window id=%d", updated.ID)
	return models.FromDomainWindow(updated), nil
}

// Delete удаляет окно расписания
// Привязанные бронирования сохраняются: связь с окном обнуляется на стороне БД
// Доступно только администраторам студии
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	s.logger.Info("Delete: deleting window id=%d by actor=%d", id, actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		return err
	}

	if err := s.windowRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", id)
	return nil
}

// Вспомогательные методы

// buildWindow собирает и валидирует domain модель окна
func buildWindow(date time.Time, startTime, endTime string, maxBookings int) (*domain.TimeWindow, error) {
	start, err := models.ToTimeString(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time must be in HH:MM format", ErrInvalidInput)
	}

	end, err := models.ToTimeString(endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time must be in HH:MM format", ErrInvalidInput)
	}

	window := &domain.TimeWindow{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		MaxBookings: maxBookings,
	}

	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return window, nil
}

// checkAdminAccess проверяет, что клиент является администратором студии
func (s *Service) checkAdminAccess(ctx context.Context, actorID int64) error {
	customer, err := s.customerClient.GetCustomer(ctx, actorID)
	if err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			s.logger.Warn("checkAdminAccess: customer id=%d not found", actorID)
			return ErrAdminRequired
		}
		s.logger.Error("checkAdminAccess: failed to get customer id=%d: %v", actorID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get customer: %v", ErrInternal, err)
	}

	if !customer.IsAdmin() {
		s.logger.Warn("checkAdminAccess: customer id=%d is not an admin", actorID)
		return ErrAdminRequired
	}

	return nil
}
