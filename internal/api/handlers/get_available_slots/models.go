package get_available_slots

import (
	"time"

	"github.com/glossline/detailing-booking-service/internal/domain"
	getAvailableSlots "github.com/glossline/detailing-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель окна с результатами проверки
type SlotResponse struct {
	WindowID     int64  `json:"window_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ServiceEnd   string `json:"service_end"`
	FitsDuration bool   `json:"fits_duration"`
	HasConflict  bool   `json:"has_conflict"`
	HasCapacity  bool   `json:"has_capacity"`
	IsAvailable  bool   `json:"is_available"`
}

// RequestParams эхо параметров запроса в ответе
type RequestParams struct {
	Date            string `json:"date"`
	ServiceID       int64  `json:"service_id"`
	DurationMinutes int    `json:"duration_minutes"`
}

// AvailabilityResponse HTTP модель ответа с доступными окнами
type AvailabilityResponse struct {
	Slots         []SlotResponse `json:"slots"`
	RequestParams RequestParams  `json:"requestParams"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID int64, dateStr string, durationMinutes int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID:       serviceID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
		RequestParams: RequestParams{
			Date:            resp.Date.Format(domain.DateFormat),
			ServiceID:       resp.ServiceID,
			DurationMinutes: resp.DurationMinutes,
		},
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			WindowID:     slot.WindowID,
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			ServiceEnd:   slot.ServiceEnd.String(),
			FitsDuration: slot.FitsDuration,
			HasConflict:  slot.HasConflict,
			HasCapacity:  slot.HasCapacity,
			IsAvailable:  slot.IsAvailable,
		})
	}

	return out
}
