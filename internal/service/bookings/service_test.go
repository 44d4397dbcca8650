package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	bookingRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/booking"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/internal/service/bookings/models"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeRepo struct {
	bookings      map[int64]*domain.Booking
	cancelled     []int64
	statusUpdates map[int64]domain.BookingStatus
	stats         []bookingRepo.CustomerBookingStats
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{
		bookings:      map[int64]*domain.Booking{},
		statusUpdates: map[int64]domain.BookingStatus{},
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if !filter.IncludeInactive && hiddenByDefault(b.Status) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func hiddenByDefault(status domain.BookingStatus) bool {
	for _, s := range domain.HiddenByDefaultStatuses {
		if status == s {
			return true
		}
	}
	return false
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, _ *string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeRepo) GetCustomerStats(_ context.Context) ([]bookingRepo.CustomerBookingStats, error) {
	return f.stats, nil
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

func defaultClient() *fakeCustomerClient {
	return &fakeCustomerClient{customers: map[int64]*customerservice.Customer{
		7:  {ID: 7, Name: "Иван", Email: "ivan@example.com", Phone: "+79990001122", Role: customerservice.RoleCustomer},
		8:  {ID: 8, Role: customerservice.RoleCustomer},
		99: {ID: 99, Role: customerservice.RoleAdmin},
	}}
}

func confirmedBooking(id, customerID int64) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		Reference:  "ref",
		CustomerID: customerID,
		ServiceID:  1,
		Date:       testDate,
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByID_AdminSeesForeignBooking(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 99)

	require.NoError(t, err)
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 8)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), defaultClient(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), defaultClient(), nopLogger{})

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7,
		ActorID:    7,
		Status:     ptr.Ptr("nonsense"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings_AdminSeesForeignHistory(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7,
		ActorID:    99,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(7), resp.Bookings[0].CustomerID)
}

func TestGetCustomerBookings_ForeignHistoryDenied(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: 7,
		ActorID:    8,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_RequiresAdmin(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{ActorID: 8})
	assert.ErrorIs(t, err, ErrAdminRequired)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{ActorID: 99})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestList_DefaultFilterKeepsCompletedVisits(t *testing.T) {
	completed := confirmedBooking(2, 7)
	completed.Status = domain.StatusCompleted
	cancelled := confirmedBooking(3, 7)
	cancelled.Status = domain.StatusCancelled

	svc := NewService(newFakeRepo(confirmedBooking(1, 7), completed, cancelled), defaultClient(), nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{ActorID: 99})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	for _, b := range resp.Bookings {
		assert.NotEqual(t, string(domain.StatusCancelled), b.Status)
	}

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{ActorID: 99, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)
}

func TestCancel_Owner(t *testing.T) {
	repo := newFakeRepo(confirmedBooking(1, 7))
	svc := NewService(repo, defaultClient(), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorID:            7,
		CancellationReason: ptr.Ptr("планы изменились"),
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	b := confirmedBooking(1, 7)
	b.Status = domain.StatusCompleted
	svc := NewService(newFakeRepo(b), defaultClient(), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorID: 8})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := newFakeRepo(confirmedBooking(1, 7))
	svc := NewService(repo, defaultClient(), nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorID: 99,
		Status:  "in_progress",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, repo.statusUpdates[1])
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	b := confirmedBooking(1, 7)
	b.Status = domain.StatusCompleted
	svc := NewService(newFakeRepo(b), defaultClient(), nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorID: 99,
		Status:  "confirmed",
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_RequiresAdmin(t *testing.T) {
	svc := NewService(newFakeRepo(confirmedBooking(1, 7)), defaultClient(), nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorID: 7,
		Status:  "in_progress",
	})

	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestListCustomers_ProfilesMergedWithStats(t *testing.T) {
	repo := newFakeRepo()
	repo.stats = []bookingRepo.CustomerBookingStats{
		{CustomerID: 7, TotalBookings: 3, LastBooked: testDate},
		{CustomerID: 1000, TotalBookings: 1, LastBooked: testDate},
	}
	svc := NewService(repo, defaultClient(), nopLogger{})

	resp, err := svc.ListCustomers(context.Background(), 99)

	require.NoError(t, err)
	require.Len(t, resp.Customers, 2)

	// Профиль найден в CustomerService
	require.NotNil(t, resp.Customers[0].Name)
	assert.Equal(t, "Иван", *resp.Customers[0].Name)
	assert.Equal(t, 3, resp.Customers[0].TotalBookings)

	// Профиль недоступен, остаются только агрегаты
	assert.Nil(t, resp.Customers[1].Name)
	assert.Equal(t, 1, resp.Customers[1].TotalBookings)
}
