package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/internal/infra/slotlock"
	bookingRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/booking"
	windowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	"github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

var (
	oldDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	byDate   map[string][]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetConflictingByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	return f.byDate[date.Format(domain.DateFormat)], nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime, endTime types.TimeString, timeWindowID *int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Date = date
	b.StartTime = startTime
	b.EndTime = endTime
	b.TimeWindowID = timeWindowID
	b.UpdatedAt = time.Now()
	return nil
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

type fakeCustomerClient struct {
	customers map[int64]*customerservice.Customer
}

func (f *fakeCustomerClient) GetCustomer(_ context.Context, id int64) (*customerservice.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, customerservice.ErrCustomerNotFound
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(extraOnNewDate ...*domain.Booking) (*UseCase, *fakeBookingRepo) {
	// Переносимое бронирование: 60 минут, привязано к окну 1 на исходной дате
	booking := &domain.Booking{
		ID:           10,
		Reference:    "ref-10",
		CustomerID:   7,
		ServiceID:    1,
		Date:         oldDate,
		StartTime:    "10:00",
		EndTime:      "11:00",
		TimeWindowID: ptr.Ptr(int64(1)),
		Status:       domain.StatusConfirmed,
		ServiceName:  "Полировка кузова",
		ServicePrice: 4500,
	}

	repo := &fakeBookingRepo{
		bookings: map[int64]*domain.Booking{10: booking},
		byDate: map[string][]*domain.Booking{
			oldDate.Format(domain.DateFormat): {booking},
			newDate.Format(domain.DateFormat): extraOnNewDate,
		},
	}

	windows := &fakeWindowRepo{windows: map[int64]*domain.TimeWindow{
		1: {ID: 1, Date: oldDate, StartTime: "10:00", EndTime: "11:30", MaxBookings: 1},
		2: {ID: 2, Date: newDate, StartTime: "12:00", EndTime: "13:30", MaxBookings: 1},
		3: {ID: 3, Date: newDate, StartTime: "15:00", EndTime: "15:30", MaxBookings: 1},
	}}

	client := &fakeCustomerClient{customers: map[int64]*customerservice.Customer{
		7:  {ID: 7, Role: customerservice.RoleCustomer},
		8:  {ID: 8, Role: customerservice.RoleCustomer},
		99: {ID: 99, Role: customerservice.RoleAdmin},
	}}

	uc := NewUseCase(repo, windows, client, passthroughTxManager{}, slotlock.NewNoopLocker(), nopLogger{})
	return uc, repo
}

func TestExecute_MovesBookingToAnotherWindow(t *testing.T) {
	uc, repo := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "ref-10", resp.Reference)
	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
	// Исходная длительность 60 минут сохраняется
	assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
	require.NotNil(t, resp.TimeWindowID)
	assert.Equal(t, int64(2), *resp.TimeWindowID)

	assert.Equal(t, newDate, repo.bookings[10].Date)
}

func TestExecute_MovesToUntiedSlot(t *testing.T) {
	uc, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ActorID:   7,
		Date:      newDate,
		StartTime: ptr.Ptr(types.TimeString("09:00")),
	})

	require.NoError(t, err)
	assert.Nil(t, resp.TimeWindowID)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
}

func TestExecute_SameDateIgnoresOwnInterval(t *testing.T) {
	// Перенос в свободный слот, пересекающийся с собственным текущим интервалом
	uc, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ActorID:   7,
		Date:      oldDate,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
}

func TestExecute_AdminCanRescheduleForeignBooking(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      99,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	require.NoError(t, err)
}

func TestExecute_ForeignBookingDenied(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      8,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TargetWindowTooShort(t *testing.T) {
	// Окно 3 длится 30 минут, бронирование 60
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(3)),
	})

	assert.ErrorIs(t, err, ErrDurationTooLong)
}

func TestExecute_TargetWindowTaken(t *testing.T) {
	taken := &domain.Booking{
		ID: 20, Date: newDate, StartTime: "12:00", EndTime: "13:00",
		TimeWindowID: ptr.Ptr(int64(2)), Status: domain.StatusConfirmed,
	}
	uc, _ := newFixture(taken)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	// Вместимость 1 и привязанное бронирование: окно заполнено
	assert.ErrorIs(t, err, ErrWindowFull)
}

func TestExecute_UntiedTargetOverlap(t *testing.T) {
	busy := &domain.Booking{
		ID: 21, Date: newDate, StartTime: "09:30", EndTime: "10:30",
		Status: domain.StatusConfirmed,
	}
	uc, _ := newFixture(busy)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 10,
		ActorID:   7,
		Date:      newDate,
		StartTime: ptr.Ptr(types.TimeString("09:00")),
	})

	assert.ErrorIs(t, err, ErrTimeOverlap)
}

func TestExecute_CancelledBookingCannotBeRescheduled(t *testing.T) {
	uc, repo := newFixture()
	repo.bookings[10].Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    404,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_WindowDateMismatch(t *testing.T) {
	uc, _ := newFixture()

	// Окно 1 относится к исходной дате, запрошена новая
	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    10,
		ActorID:      7,
		Date:         newDate,
		TimeWindowID: ptr.Ptr(int64(1)),
	})

	assert.ErrorIs(t, err, ErrWindowDateMismatch)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 7, Date: newDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID: 10, ActorID: 7,
		TimeWindowID: ptr.Ptr(int64(2)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
