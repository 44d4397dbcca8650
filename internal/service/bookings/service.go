package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossline/detailing-booking-service/internal/domain"
	bookingRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/booking"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	customerClient CustomerServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerClient CustomerServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		customerClient: customerClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, администратор студии - любые
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdminAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
// Клиент видит только свою историю, администратор студии - историю любого клиента
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d by actor=%d, status=%v",
		req.CustomerID, req.ActorID, req.Status)

	if req.ActorID != req.CustomerID {
		if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
			s.logger.Warn("GetCustomerBookings: access denied for actor=%d to customer=%d history",
				req.ActorID, req.CustomerID)
			return nil, ErrAccessDenied
		}
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования студии с гибкой фильтрацией
// Поддерживает фильтрацию по клиенту, периоду, статусу и включение неактивных записей
// Доступно только администраторам студии
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings for actor=%d", req.ActorID)
	if req.CustomerID != nil {
		logMsg += fmt.Sprintf(", customer=%d", *req.CustomerID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только свое бронирование, администратор - любое
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, req.ActorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdminAccess(ctx, booking, req.ActorID); err != nil {
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", req.ActorID, bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только администраторам студии; переходы проверяются по жизненному циклу
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by actor=%d",
		bookingID, req.Status, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return err
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if !domain.ValidTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// ListCustomers возвращает клиентов студии с агрегатами по бронированиям
// Профили подтягиваются из CustomerService; при его недоступности
// список отдается только с агрегатами, без имен и контактов
// Доступно только администраторам студии
func (s *Service) ListCustomers(ctx context.Context, actorID int64) (*models.CustomerListResponse, error) {
	s.logger.Info("ListCustomers: fetching customers for actor=%d", actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		return nil, err
	}

	stats, err := s.bookingRepo.GetCustomerStats(ctx)
	if err != nil {
		s.logger.Error("ListCustomers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCustomers - repository error: %v", ErrInternal, err)
	}

	resp := &models.CustomerListResponse{
		Customers: make([]models.CustomerSummary, 0, len(stats)),
	}

	for _, stat := range stats {
		summary := models.CustomerSummary{
			CustomerID:    stat.CustomerID,
			TotalBookings: stat.TotalBookings,
			LastBooked:    stat.LastBooked.Format(domain.DateFormat),
		}

		customer, err := s.customerClient.GetCustomer(ctx, stat.CustomerID)
		if err != nil {
			s.logger.Warn("ListCustomers: failed to get profile for customer=%d: %v", stat.CustomerID, err)
		} else {
			summary.Name = &customer.Name
			summary.Email = &customer.Email
			summary.Phone = &customer.Phone
		}

		resp.Customers = append(resp.Customers, summary)
	}

	s.logger.Info("ListCustomers: successfully fetched %d customers", len(resp.Customers))
	return resp, nil
}

// Вспомогательные методы

// checkOwnerOrAdminAccess проверяет, что клиент владеет бронированием
// или является администратором студии
func (s *Service) checkOwnerOrAdminAccess(ctx context.Context, booking *domain.Booking, actorID int64) error {
	if booking.CustomerID == actorID {
		return nil
	}

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		return ErrAccessDenied
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
