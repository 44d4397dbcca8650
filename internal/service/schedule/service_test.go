package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/schedule/models"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeWindowRepo struct {
	windows map[int64]*domain.TimeWindow
	nextID  int64
	deleted []int64
}

func newFakeWindowRepo() *fakeWindowRepo {
	return &fakeWindowRepo{windows: map[int64]*domain.TimeWindow{}, nextID: 1}
}

func (f *fakeWindowRepo) Create(_ context.Context, w *domain.TimeWindow) (*domain.TimeWindow, error) {
	stored := *w
	stored.ID = f.nextID
	f.nextID++
	f.windows[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeWindowRepo) GetByID(_ context.Context, id int64) (*domain.TimeWindow, error) {
	if w, ok := f.windows[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, windowRepo.ErrWindowNotFound
}

func (f *fakeWindowRepo) GetByDate(_ context.Context, date time.Time) ([]domain.TimeWindow, error) {
	var out []domain.TimeWindow
	for _, w := range f.windows {
		if w.Date.Equal(date) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWindowRepo) Update(_ context.Context, w *domain.TimeWindow) (*domain.TimeWindow, error) {
	if _, ok := f.windows[w.ID]; !ok {
		return nil, windowRepo.ErrWindowNotFound
	}
	stored := *w
	f.windows[w.ID] = &stored
	return &stored, nil
}

func (f *fakeWindowRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.windows[id]; !ok {
		return windowRepo.ErrWindowNotFound
	}
	delete(f.windows, id)
	f.deleted = append(f.deleted, id)
	return nil
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

func newService(repo *fakeWindowRepo) *Service {
	client := &fakeCustomerClient{customers: map[int64]*customerservice.Customer{
		7:  {ID: 7, Role: customerservice.RoleCustomer},
		99: {ID: 99, Role: customerservice.RoleAdmin},
	}}
	return NewService(repo, client, nopLogger{})
}

func TestCreate_ValidWindow(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	resp, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "10:00",
		EndTime:     "11:30",
		MaxBookings: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-01", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 2, resp.MaxBookings)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	_, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     7,
		Date:        testDate,
		StartTime:   "10:00",
		EndTime:     "11:30",
		MaxBookings: 2,
	})

	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestCreate_InvertedWindowRejected(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	_, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "12:00",
		EndTime:     "11:00",
		MaxBookings: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_ZeroCapacityAllowed(t *testing.T) {
	// Окно с нулевой вместимостью можно создать, оно просто никогда не доступно
	svc := newService(newFakeWindowRepo())

	resp, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "10:00",
		EndTime:     "11:00",
		MaxBookings: 0,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.MaxBookings)
}

func TestCreate_BadTimeFormat(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	_, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "10am",
		EndTime:     "11:00",
		MaxBookings: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeWindowRepo()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "10:00",
		EndTime:     "11:30",
		MaxBookings: 2,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateWindowRequest{
		ActorID:     99,
		MaxBookings: ptr.Ptr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.StartTime)
	assert.Equal(t, 5, updated.MaxBookings)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	_, err := svc.Update(context.Background(), 404, &models.UpdateWindowRequest{ActorID: 99})

	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDelete_Window(t *testing.T) {
	repo := newFakeWindowRepo()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), &models.CreateWindowRequest{
		ActorID:     99,
		Date:        testDate,
		StartTime:   "10:00",
		EndTime:     "11:00",
		MaxBookings: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 99, created.ID))
	assert.Equal(t, []int64{created.ID}, repo.deleted)

	err = svc.Delete(context.Background(), 99, created.ID)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestListByDate_RequiresAdmin(t *testing.T) {
	svc := newService(newFakeWindowRepo())

	_, err := svc.ListByDate(context.Background(), 7, testDate)

	assert.ErrorIs(t, err, ErrAdminRequired)
}
