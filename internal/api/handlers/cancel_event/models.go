package cancel_event

import (
	cancelEvent "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_event"
)

// CancelEventRequest HTTP request model
type CancelEventRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelEventResponse HTTP response model
type CancelEventResponse struct {
	EventID       int64 `json:"eventId"`
	Notifications int   `json:"notifications"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelEvent.Response) *CancelEventResponse {
	return &CancelEventResponse{
		EventID:       resp.EventID,
		Notifications: resp.Notifications,
	}
}
