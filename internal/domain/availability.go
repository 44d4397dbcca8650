package domain

import "github.com/glossline/detailing-booking-service/pkg/types"

// WindowAvailability результат проверки одного окна для заданной длительности услуги
// Вычисляется заново на каждый запрос и нигде не хранится.
type WindowAvailability struct {
	Window       TimeWindow
	ServiceEnd   types.TimeString // start_time окна + запрошенная длительность
	FitsDuration bool             // услуга помещается в окно
	HasConflict  bool             // есть пересечение с существующим бронированием
	HasCapacity  bool             // в окне остались места
}

// IsAvailable returns true only when all three checks pass
func (a WindowAvailability) IsAvailable() bool {
	return a.FitsDuration && !a.HasConflict && a.HasCapacity
}

// EvaluateWindows проверяет каждое окно на возможность принять новое бронирование
// заданной длительности. Чистая функция: не выполняет I/O, не изменяет аргументы
// и безопасна для конкурентного вызова.
//
// Предусловия (обеспечиваются вызывающим слоем):
//   - durationMinutes > 0
//   - bookings уже отфильтрованы до статусов, занимающих время (confirmed, in_progress)
//   - окна и бронирования относятся к одной дате
//
// Порядок входного списка окон сохраняется; вызывающий слой передает окна,
// отсортированные по start_time по возрастанию.
func EvaluateWindows(windows []TimeWindow, bookings []*Booking, durationMinutes int) []WindowAvailability {
	results := make([]WindowAvailability, len(windows))
	for i, w := range windows {
		results[i] = EvaluateWindow(w, bookings, durationMinutes)
	}
	return results
}

// EvaluateWindow проверяет одно окно по трем правилам:
//
//  1. fitsDuration: start_time + duration <= end_time
//  2. hasConflict: бронирование привязано к окну по id ЛИБО интервал
//     [start_time, start_time+duration) пересекается с интервалом бронирования.
//     Пересечение полуинтервалов строгое: окна "встык" не конфликтуют.
//  3. hasCapacity: число привязанных к окну бронирований < max_bookings.
//     Окно с max_bookings = 0 не доступно никогда, даже пустое.
func EvaluateWindow(w TimeWindow, bookings []*Booking, durationMinutes int) WindowAvailability {
	result := WindowAvailability{Window: w}

	serviceEnd, err := w.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		// Выход за пределы суток: услуга заведомо не помещается
		return result
	}

	result.ServiceEnd = serviceEnd
	result.FitsDuration = !serviceEnd.IsAfter(w.EndTime)

	tied := 0
	for _, b := range bookings {
		if b.IsTiedTo(w.ID) {
			tied++
			result.HasConflict = true
			continue
		}
		if overlaps(w.StartTime, serviceEnd, b.StartTime, b.EndTime) {
			result.HasConflict = true
		}
	}

	result.HasCapacity = tied < w.MaxBookings
	return result
}

// AvailableWindows возвращает только доступные окна, сохраняя порядок входа
func AvailableWindows(windows []TimeWindow, bookings []*Booking, durationMinutes int) []WindowAvailability {
	available := make([]WindowAvailability, 0, len(windows))
	for _, result := range EvaluateWindows(windows, bookings, durationMinutes) {
		if result.IsAvailable() {
			available = append(available, result)
		}
	}
	return available
}

// CountOverlapping подсчитывает бронирования, пересекающиеся с интервалом
// [start, start+duration). Используется write-путем для свободных (не привязанных
// к окну) бронирований.
func CountOverlapping(start types.TimeString, durationMinutes int, bookings []*Booking) int {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0
	for _, b := range bookings {
		if overlaps(start, end, b.StartTime, b.EndTime) {
			count++
		}
	}
	return count
}

// CountTied подсчитывает бронирования, явно привязанные к окну
func CountTied(windowID int64, bookings []*Booking) int {
	count := 0
	for _, b := range bookings {
		if b.IsTiedTo(windowID) {
			count++
		}
	}
	return count
}

// overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Строгие неравенства: интервалы, граничащие точка-в-точку, НЕ пересекаются.
//
// Примеры:
//   - [09:00, 09:30) и [08:30, 09:15) → пересекаются (общий участок 09:00-09:15)
//   - [09:00, 09:30) и [08:00, 09:00) → не пересекаются (встык)
//   - [09:00, 09:30) и [09:30, 10:00) → не пересекаются (встык)
func overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}
