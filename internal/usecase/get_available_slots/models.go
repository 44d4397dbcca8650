package get_available_slots

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	"github.com/glossline/detailing-booking-service/pkg/types"
)

// Request модель запроса на получение доступных окон
type Request struct {
	ServiceID       int64     // ID услуги из каталога
	Date            time.Time // Дата для получения окон (без времени)
	DurationMinutes int       // Запрошенная длительность; 0 = длительность услуги из каталога
}

// Response модель ответа со списком доступных окон
type Response struct {
	Date            time.Time // Дата, на которую запрашивались окна
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Фактически использованная длительность
	Slots           []Slot    // Доступные окна, отсортированные по времени начала
}

// Slot результат проверки окна
type Slot struct {
	WindowID     int64            // ID окна расписания
	StartTime    types.TimeString // Время начала окна
	EndTime      types.TimeString // Время конца окна
	ServiceEnd   types.TimeString // Время окончания услуги при старте в начале окна
	FitsDuration bool
	HasConflict  bool
	HasCapacity  bool
	IsAvailable  bool
}

// fromDomain конвертирует результат evaluator в модель ответа
func fromDomain(result domain.WindowAvailability) Slot {
	return Slot{
		WindowID:     result.Window.ID,
		StartTime:    result.Window.StartTime,
		EndTime:      result.Window.EndTime,
		ServiceEnd:   result.ServiceEnd,
		FitsDuration: result.FitsDuration,
		HasConflict:  result.HasConflict,
		HasCapacity:  result.HasCapacity,
		IsAvailable:  result.IsAvailable(),
	}
}
