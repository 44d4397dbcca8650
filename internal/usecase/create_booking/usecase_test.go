package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/infra/slotlock"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	stored := *b
	stored.ID = 100
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeBookingRepo) GetConflictingByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeWindowRepo struct {
	windows map[int64]*domain.TimeWindow
}

func (f *fakeWindowRepo) GetByID(_ context.Context, id int64) (*domain.TimeWindow, error) {
	if w, ok := f.windows[id]; ok {
		return w, nil
	}
	return nil, windowRepo.ErrWindowNotFound
}

type fakeCatalogRepo struct {
	services map[int64]*domain.DetailingService
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.DetailingService, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeCustomerClient struct {
	customer   *customerservice.Customer
	vehicle    *customerservice.Vehicle
	vehicleErr error
}

func (f *fakeCustomerClient) GetCustomer(_ context.Context, id int64) (*customerservice.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, customerservice.ErrCustomerNotFound
	}
	return f.customer, nil
}

func (f *fakeCustomerClient) GetSelectedVehicleWithGracefulDegradation(_ context.Context, _ int64) (*customerservice.Vehicle, error) {
	return f.vehicle, f.vehicleErr
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type failingLocker struct{}

func (failingLocker) WithLock(_ context.Context, _ string, _ func(ctx context.Context) error) error {
	return slotlock.ErrLockNotAcquired
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	bookingRepo *fakeBookingRepo
	txManager   *passthroughTxManager
	uc          *UseCase
}

func newFixture(existing []*domain.Booking) *fixture {
	bookingRepo := &fakeBookingRepo{existing: existing}
	windows := &fakeWindowRepo{windows: map[int64]*domain.TimeWindow{
		1: {ID: 1, Date: testDate, StartTime: "10:00", EndTime: "11:30", MaxBookings: 2},
		2: {ID: 2, Date: testDate, StartTime: "14:00", EndTime: "14:30", MaxBookings: 1},
		3: {ID: 3, Date: testDate.AddDate(0, 0, 1), StartTime: "10:00", EndTime: "12:00", MaxBookings: 1},
	}}
	catalog := &fakeCatalogRepo{services: map[int64]*domain.DetailingService{
		1: {ID: 1, Name: "Химчистка салона", Price: 6000, DurationMinutes: 60, Active: true},
		2: {ID: 2, Name: "Архивная услуга", Price: 1000, DurationMinutes: 30, Active: false},
	}}
	client := &fakeCustomerClient{
		customer: &customerservice.Customer{ID: 7, Name: "Иван", Role: customerservice.RoleCustomer},
		vehicle:  &customerservice.Vehicle{Make: "Toyota", Model: "Camry", LicensePlate: "А123БВ77"},
	}
	txManager := &passthroughTxManager{}

	uc := NewUseCase(bookingRepo, windows, catalog, client, txManager, slotlock.NewNoopLocker(), nopLogger{})
	return &fixture{bookingRepo: bookingRepo, txManager: txManager, uc: uc}
}

func tiedRequest(windowID int64) *Request {
	return &Request{
		CustomerID:   7,
		ServiceID:    1,
		Date:         testDate,
		TimeWindowID: ptr.Ptr(windowID),
	}
}

func TestExecute_CreatesTiedBooking(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), tiedRequest(1))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Химчистка салона", resp.ServiceName)
	require.NotNil(t, resp.VehicleMake)
	assert.Equal(t, "Toyota", *resp.VehicleMake)
	assert.Equal(t, 1, f.txManager.calls)
}

func TestExecute_CreatesUntiedBooking(t *testing.T) {
	f := newFixture(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		CustomerID: 7,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  ptr.Ptr(types.TimeString("16:00")),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.TimeWindowID)
	assert.Equal(t, types.TimeString("16:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.EndTime)
}

func TestExecute_DurationDoesNotFitWindow(t *testing.T) {
	// Окно 14:00-14:30, услуга 60 минут
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), tiedRequest(2))

	assert.ErrorIs(t, err, ErrDurationTooLong)
}

func TestExecute_WindowFull(t *testing.T) {
	// Вместимость окна 2, оба места заняты
	existing := []*domain.Booking{
		{Date: testDate, StartTime: "10:00", EndTime: "11:00", TimeWindowID: ptr.Ptr(int64(1)), Status: domain.StatusConfirmed},
		{Date: testDate, StartTime: "10:00", EndTime: "11:00", TimeWindowID: ptr.Ptr(int64(1)), Status: domain.StatusConfirmed},
	}
	f := newFixture(existing)

	_, err := f.uc.Execute(context.Background(), tiedRequest(1))

	assert.ErrorIs(t, err, ErrWindowFull)
}

func TestExecute_TiedConflictWithRemainingCapacity(t *testing.T) {
	// Одно привязанное бронирование при вместимости 2: место есть, но слот занят
	existing := []*domain.Booking{
		{Date: testDate, StartTime: "10:00", EndTime: "11:00", TimeWindowID: ptr.Ptr(int64(1)), Status: domain.StatusConfirmed},
	}
	f := newFixture(existing)

	_, err := f.uc.Execute(context.Background(), tiedRequest(1))

	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_OverlapWithUntiedBooking(t *testing.T) {
	// Свободное бронирование 09:30-10:30 пересекает начало окна 10:00-11:30
	existing := []*domain.Booking{
		{Date: testDate, StartTime: "09:30", EndTime: "10:30", Status: domain.StatusConfirmed},
	}
	f := newFixture(existing)

	_, err := f.uc.Execute(context.Background(), tiedRequest(1))

	assert.ErrorIs(t, err, ErrTimeOverlap)
}

func TestExecute_UntiedBookingOverlap(t *testing.T) {
	existing := []*domain.Booking{
		{Date: testDate, StartTime: "16:30", EndTime: "17:30", Status: domain.StatusConfirmed},
	}
	f := newFixture(existing)

	_, err := f.uc.Execute(context.Background(), &Request{
		CustomerID: 7,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  ptr.Ptr(types.TimeString("16:00")),
	})

	assert.ErrorIs(t, err, ErrTimeOverlap)
}

func TestExecute_BackToBackDoesNotConflict(t *testing.T) {
	// Бронирование заканчивается ровно в начале услуги
	existing := []*domain.Booking{
		{Date: testDate, StartTime: "15:00", EndTime: "16:00", Status: domain.StatusConfirmed},
	}
	f := newFixture(existing)

	resp, err := f.uc.Execute(context.Background(), &Request{
		CustomerID: 7,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  ptr.Ptr(types.TimeString("16:00")),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("16:00"), resp.StartTime)
}

func TestExecute_WindowOnAnotherDate(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), tiedRequest(3))

	assert.ErrorIs(t, err, ErrWindowDateMismatch)
}

func TestExecute_WindowNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), tiedRequest(99))

	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestExecute_ServiceNotBookable(t *testing.T) {
	f := newFixture(nil)

	req := tiedRequest(1)
	req.ServiceID = 2

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	f := newFixture(nil)

	req := tiedRequest(1)
	req.CustomerID = 42

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_NoSelectedVehicleProceedsWithoutIt(t *testing.T) {
	f := newFixture(nil)
	client := &fakeCustomerClient{
		customer:   &customerservice.Customer{ID: 7, Role: customerservice.RoleCustomer},
		vehicleErr: customerservice.ErrVehicleNotFound,
	}
	f.uc.customerClient = client

	resp, err := f.uc.Execute(context.Background(), tiedRequest(1))

	require.NoError(t, err)
	assert.Nil(t, resp.VehicleMake)
}

func TestExecute_DegradedCustomerServiceProceedsWithoutVehicle(t *testing.T) {
	f := newFixture(nil)
	client := &fakeCustomerClient{
		customer:   &customerservice.Customer{ID: 7, Role: customerservice.RoleCustomer},
		vehicleErr: fmt.Errorf("%w: customer_id=7, error=connection refused", customerservice.ErrServiceDegraded),
	}
	f.uc.customerClient = client

	resp, err := f.uc.Execute(context.Background(), tiedRequest(1))

	require.NoError(t, err)
	assert.Nil(t, resp.VehicleMake)
	assert.Nil(t, resp.VehicleModel)
	assert.Nil(t, resp.VehiclePlate)
	require.NotNil(t, f.bookingRepo.created)
}

func TestExecute_SlotContended(t *testing.T) {
	f := newFixture(nil)
	f.uc.locker = failingLocker{}

	_, err := f.uc.Execute(context.Background(), tiedRequest(1))

	assert.ErrorIs(t, err, ErrSlotContended)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(nil)

	cases := []struct {
		name string
		req  *Request
	}{
		{"no mode selected", &Request{CustomerID: 7, ServiceID: 1, Date: testDate}},
		{"both modes", &Request{
			CustomerID: 7, ServiceID: 1, Date: testDate,
			TimeWindowID: ptr.Ptr(int64(1)), StartTime: ptr.Ptr(types.TimeString("10:00")),
		}},
		{"missing date", &Request{CustomerID: 7, ServiceID: 1, TimeWindowID: ptr.Ptr(int64(1))}},
		{"bad start time", &Request{
			CustomerID: 7, ServiceID: 1, Date: testDate,
			StartTime: ptr.Ptr(types.TimeString("25:00")),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
