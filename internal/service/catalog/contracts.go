package catalog

import (
	"context"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	Create(ctx context.Context, service *domain.DetailingService) (*domain.DetailingService, error)
	GetByID(ctx context.Context, id int64) (*domain.DetailingService, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.DetailingService, error)
	Update(ctx context.Context, service *domain.DetailingService) (*domain.DetailingService, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomer(ctx context.Context, customerID int64) (*customerservice.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
