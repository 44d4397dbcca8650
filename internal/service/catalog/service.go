package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг детейлинга
type Service struct {
	catalogRepo    CatalogRepository
	customerClient CustomerServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	customerClient CustomerServiceClient,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:    catalogRepo,
		customerClient: customerClient,
		logger:         logger,
	}
}

// List возвращает услуги каталога
// Клиентам отдаются только активные услуги, администраторам - весь каталог
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, activeOnly=%v", activeOnly)

	services, err := s.catalogRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID возвращает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create добавляет услугу в каталог
// Доступно только администраторам студии
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q by actor=%d", req.Name, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	if err := validateServiceData(req.Name, req.Description, req.Price, req.DurationMinutes); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	service := &domain.DetailingService{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}

	created, err := s.catalogRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update изменяет услугу каталога
// Доступно только администраторам студии; nil-поля запроса не изменяются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by actor=%d", id, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	service, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateServiceData(service.Name, service.Description, service.Price, service.DurationMinutes); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found during update", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", updated.ID)
	return models.FromDomainService(updated), nil
}

// Вспомогательные методы

// validateServiceData проверяет бизнес-ограничения полей услуги
func validateServiceData(name string, description *string, price float64, durationMinutes int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if description != nil && len(*description) > domain.MaxServiceDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxServiceDescriptionLength)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
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
