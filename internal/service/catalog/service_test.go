package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/catalog/models"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
)

type fakeCatalogRepo struct {
	services map[int64]*domain.DetailingService
	nextID   int64
}

func newFakeCatalogRepo(services ...*domain.DetailingService) *fakeCatalogRepo {
	repo := &fakeCatalogRepo{services: map[int64]*domain.DetailingService{}, nextID: 1}
	for _, s := range services {
		repo.services[s.ID] = s
		if s.ID >= repo.nextID {
			repo.nextID = s.ID + 1
		}
	}
	return repo
}

func (f *fakeCatalogRepo) Create(_ context.Context, s *domain.DetailingService) (*domain.DetailingService, error) {
	stored := *s
	stored.ID = f.nextID
	f.nextID++
	f.services[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.DetailingService, error) {
	if s, ok := f.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) List(_ context.Context, activeOnly bool) ([]*domain.DetailingService, error) {
	var out []*domain.DetailingService
	for _, s := range f.services {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, s *domain.DetailingService) (*domain.DetailingService, error) {
	if _, ok := f.services[s.ID]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	stored := *s
	f.services[s.ID] = &stored
	return &stored, nil
}

type fakeCustomerClient struct {
	customers map[int64]*customerservice.Customer
}

func (f *fakeCustomerClient) GetCustomer(_ context.Context, id int64) (*customerservice.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, customerservice.ErrCustomerNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeCatalogRepo) *Service {
	client := &fakeCustomerClient{customers: map[int64]*customerservice.Customer{
		7:  {ID: 7, Role: customerservice.RoleCustomer},
		99: {ID: 99, Role: customerservice.RoleAdmin},
	}}
	return NewService(repo, client, nopLogger{})
}

func TestList_ActiveOnly(t *testing.T) {
	repo := newFakeCatalogRepo(
		&domain.DetailingService{ID: 1, Name: "Полировка", Price: 4500, DurationMinutes: 60, Active: true},
		&domain.DetailingService{ID: 2, Name: "Архив", Price: 1000, DurationMinutes: 30, Active: false},
	)
	svc := newService(repo)

	resp, err := svc.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Полировка", resp.Services[0].Name)
}

func TestCreate_ValidService(t *testing.T) {
	svc := newService(newFakeCatalogRepo())

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		ActorID:         99,
		Name:            "Химчистка салона",
		Price:           6000,
		DurationMinutes: 120,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.Active)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeCatalogRepo())

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		ActorID:         7,
		Name:            "Химчистка салона",
		Price:           6000,
		DurationMinutes: 120,
	})

	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestCreate_InvalidDuration(t *testing.T) {
	svc := newService(newFakeCatalogRepo())

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		ActorID:         99,
		Name:            "Экспресс",
		Price:           500,
		DurationMinutes: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_DeactivatesService(t *testing.T) {
	repo := newFakeCatalogRepo(
		&domain.DetailingService{ID: 1, Name: "Полировка", Price: 4500, DurationMinutes: 60, Active: true},
	)
	svc := newService(repo)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		ActorID: 99,
		Active:  ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.Equal(t, "Полировка", resp.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(newFakeCatalogRepo())

	_, err := svc.Update(context.Background(), 404, &models.UpdateServiceRequest{ActorID: 99})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
