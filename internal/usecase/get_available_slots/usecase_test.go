package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/internal/domain"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	"github.com/glossline/detailing-booking-service/pkg/ptr"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeWindowRepo struct {
	windows []domain.TimeWindow
	err     error
}

func (f *fakeWindowRepo) GetByDate(_ context.Context, _ time.Time) ([]domain.TimeWindow, error) {
	return f.windows, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetConflictingByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(windows []domain.TimeWindow, bookings []*domain.Booking) *UseCase {
	catalog := &fakeCatalogRepo{services: map[int64]*domain.DetailingService{
		1: {ID: 1, Name: "Полировка кузова", Price: 4500, DurationMinutes: 60, Active: true},
		2: {ID: 2, Name: "Снята с продажи", Price: 1000, DurationMinutes: 30, Active: false},
	}}
	return NewUseCase(&fakeWindowRepo{windows: windows}, &fakeBookingRepo{bookings: bookings}, catalog, nopLogger{})
}

func window(id int64, start, end string, capacity int) domain.TimeWindow {
	return domain.TimeWindow{
		ID:          id,
		Date:        testDate,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		MaxBookings: capacity,
	}
}

func TestExecute_ReturnsAvailableWindows(t *testing.T) {
	windows := []domain.TimeWindow{
		window(1, "10:00", "11:30", 2),
		window(2, "14:00", "15:30", 1),
	}

	uc := newUseCase(windows, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		Date:            testDate,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(1), resp.Slots[0].WindowID)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].ServiceEnd)
	assert.True(t, resp.Slots[0].IsAvailable)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_DurationDefaultsToCatalog(t *testing.T) {
	// Окно 14:00-15:30 не вмещает 120 минут, но вмещает каталожные 60
	windows := []domain.TimeWindow{window(1, "14:00", "15:30", 1)}

	uc := newUseCase(windows, nil)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 1)
}

func TestExecute_ExcludesWindowsNotFittingDuration(t *testing.T) {
	// 14:00 + 120 = 16:00 > 15:30
	windows := []domain.TimeWindow{window(1, "14:00", "15:30", 1)}

	uc := newUseCase(windows, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		Date:            testDate,
		DurationMinutes: 120,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExcludesFullWindow(t *testing.T) {
	// Окно вместимостью 1 с одним привязанным бронированием
	windows := []domain.TimeWindow{window(1, "10:00", "11:30", 1)}
	bookings := []*domain.Booking{{
		Date:         testDate,
		StartTime:    "10:00",
		EndTime:      "11:00",
		TimeWindowID: ptr.Ptr(int64(1)),
		Status:       domain.StatusConfirmed,
	}}

	uc := newUseCase(windows, bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		Date:            testDate,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExcludesOverlappingUntiedBooking(t *testing.T) {
	// Окно 09:00-10:00, услуга 30 минут, свободное бронирование 08:30-09:15
	windows := []domain.TimeWindow{window(1, "09:00", "10:00", 2)}
	bookings := []*domain.Booking{{
		Date:      testDate,
		StartTime: "08:30",
		EndTime:   "09:15",
		Status:    domain.StatusConfirmed,
	}}

	uc := newUseCase(windows, bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		Date:            testDate,
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID:       99,
		Date:            testDate,
		DurationMinutes: 30,
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceNotBookable(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID:       2,
		Date:            testDate,
		DurationMinutes: 30,
	})

	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate, DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
