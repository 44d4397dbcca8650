package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline/detailing-booking-service/pkg/ptr"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func window(id int64, start, end string, capacity int) TimeWindow {
	return TimeWindow{
		ID:          id,
		Date:        testDate,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		MaxBookings: capacity,
	}
}

func booking(start, end string, windowID *int64) *Booking {
	return &Booking{
		CustomerID:   1,
		Date:         testDate,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		TimeWindowID: windowID,
		Status:       StatusConfirmed,
	}
}

func TestEvaluateWindow_EmptyWindowAvailable(t *testing.T) {
	w := window(1, "10:00", "11:30", 2)

	result := EvaluateWindow(w, nil, 60)

	assert.True(t, result.FitsDuration)
	assert.False(t, result.HasConflict)
	assert.True(t, result.HasCapacity)
	assert.True(t, result.IsAvailable())
	assert.Equal(t, types.TimeString("11:00"), result.ServiceEnd)
}

func TestEvaluateWindow_DurationExceedsWindow(t *testing.T) {
	// 14:00 + 120 минут = 16:00 > 15:30 - не помещается независимо от бронирований
	w := window(1, "14:00", "15:30", 5)

	result := EvaluateWindow(w, nil, 120)

	assert.False(t, result.FitsDuration)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindow_ExactFit(t *testing.T) {
	// Услуга ровно по границе окна помещается (serviceEnd == end_time)
	w := window(1, "14:00", "16:00", 1)

	result := EvaluateWindow(w, nil, 120)

	assert.True(t, result.FitsDuration)
	assert.True(t, result.IsAvailable())
}

func TestEvaluateWindow_TiedBookingConflicts(t *testing.T) {
	// Привязанное к окну бронирование конфликтует независимо от интервалов
	w := window(7, "10:00", "12:00", 5)
	b := booking("18:00", "19:00", ptr.Ptr(int64(7))) // интервал не пересекается

	result := EvaluateWindow(w, []*Booking{b}, 60)

	assert.True(t, result.HasConflict)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindow_UntiedOverlapConflicts(t *testing.T) {
	// Окно 09:00-10:00, бронирование 08:30-09:15 без привязки, услуга 30 минут
	// Пересечение: 09:00 < 09:15 и 09:30 > 08:30
	w := window(1, "09:00", "10:00", 2)
	b := booking("08:30", "09:15", nil)

	result := EvaluateWindow(w, []*Booking{b}, 30)

	assert.True(t, result.HasConflict)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindow_BackToBackDoesNotConflict(t *testing.T) {
	// Бронирование заканчивается ровно в момент начала окна - не конфликт
	w := window(1, "09:00", "10:00", 1)
	before := booking("08:00", "09:00", nil)
	after := booking("09:30", "10:30", nil)

	result := EvaluateWindow(w, []*Booking{before}, 30)
	assert.False(t, result.HasConflict)
	assert.True(t, result.IsAvailable())

	// Услуга заканчивается ровно в момент начала следующего бронирования
	result = EvaluateWindow(w, []*Booking{after}, 30)
	assert.False(t, result.HasConflict)
	assert.True(t, result.IsAvailable())
}

func TestEvaluateWindow_CapacityBoundary(t *testing.T) {
	w := window(3, "10:00", "14:00", 2)

	// max_bookings-1 привязанных бронирований: вместимость есть,
	// но привязанное бронирование дает конфликт, поэтому смотрим только флаг
	one := []*Booking{booking("10:00", "11:00", ptr.Ptr(int64(3)))}
	result := EvaluateWindow(w, one, 60)
	assert.True(t, result.HasCapacity)

	// ровно max_bookings - вместимости нет
	two := append(one, booking("11:00", "12:00", ptr.Ptr(int64(3))))
	result = EvaluateWindow(w, two, 60)
	assert.False(t, result.HasCapacity)
}

func TestEvaluateWindow_FullCapacityExcludes(t *testing.T) {
	// Окно 10:00-11:30 вместимостью 1 с одним привязанным бронированием
	w := window(1, "10:00", "11:30", 1)
	b := booking("10:00", "11:00", ptr.Ptr(int64(1)))

	result := EvaluateWindow(w, []*Booking{b}, 60)

	assert.False(t, result.HasCapacity)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindow_ZeroCapacityNeverAvailable(t *testing.T) {
	// max_bookings = 0 при отсутствии бронирований - окно недоступно
	w := window(1, "10:00", "12:00", 0)

	result := EvaluateWindow(w, nil, 30)

	assert.True(t, result.FitsDuration)
	assert.False(t, result.HasConflict)
	assert.False(t, result.HasCapacity)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindow_DurationPastMidnight(t *testing.T) {
	w := window(1, "23:30", "23:59", 1)

	result := EvaluateWindow(w, nil, 120)

	assert.False(t, result.FitsDuration)
	assert.False(t, result.IsAvailable())
}

func TestEvaluateWindows_PreservesOrder(t *testing.T) {
	windows := []TimeWindow{
		window(1, "09:00", "10:00", 1),
		window(2, "10:00", "11:00", 1),
		window(3, "11:00", "12:00", 1),
	}

	results := EvaluateWindows(windows, nil, 30)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, windows[i].ID, r.Window.ID)
		assert.True(t, r.IsAvailable())
	}
}

func TestEvaluateWindows_Idempotent(t *testing.T) {
	windows := []TimeWindow{
		window(1, "09:00", "10:00", 1),
		window(2, "10:00", "11:30", 2),
	}
	bookings := []*Booking{
		booking("09:15", "09:45", nil),
		booking("10:00", "11:00", ptr.Ptr(int64(2))),
	}

	first := EvaluateWindows(windows, bookings, 45)
	second := EvaluateWindows(windows, bookings, 45)

	assert.Equal(t, first, second)
}

func TestAvailableWindows_FiltersUnavailable(t *testing.T) {
	windows := []TimeWindow{
		window(1, "09:00", "10:00", 1), // конфликт с untied бронированием
		window(2, "10:00", "11:30", 2), // доступно
		window(3, "14:00", "14:30", 1), // не помещается
	}
	bookings := []*Booking{booking("08:30", "09:15", nil)}

	available := AvailableWindows(windows, bookings, 60)

	require.Len(t, available, 1)
	assert.Equal(t, int64(2), available[0].Window.ID)
}

func TestCountOverlapping(t *testing.T) {
	bookings := []*Booking{
		booking("09:00", "10:00", nil),
		booking("10:00", "11:00", nil), // встык - не считается
		booking("09:30", "09:45", nil),
	}

	assert.Equal(t, 2, CountOverlapping(types.TimeString("09:00"), 60, bookings))
	assert.Equal(t, 0, CountOverlapping(types.TimeString("08:00"), 60, bookings))
	assert.Equal(t, 1, CountOverlapping(types.TimeString("10:30"), 30, bookings))
}

func TestCountTied(t *testing.T) {
	bookings := []*Booking{
		booking("09:00", "10:00", ptr.Ptr(int64(5))),
		booking("10:00", "11:00", ptr.Ptr(int64(5))),
		booking("11:00", "12:00", ptr.Ptr(int64(6))),
		booking("12:00", "13:00", nil),
	}

	assert.Equal(t, 2, CountTied(5, bookings))
	assert.Equal(t, 1, CountTied(6, bookings))
	assert.Equal(t, 0, CountTied(99, bookings))
}
