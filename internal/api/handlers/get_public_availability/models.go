package get_public_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

// SlotResponse свободный слот
type SlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EventTypeID     int64          `json:"eventTypeId"`
	DurationMinutes int            `json:"durationMinutes"`
	StartDate       string         `json:"startDate"`
	EndDate         string         `json:"endDate"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		EventTypeID:     resp.EventTypeID,
		DurationMinutes: resp.DurationMinutes,
		StartDate:       resp.StartDate,
		EndDate:         resp.EndDate,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}
	return out
}
