package get_public_event_type

import (
	"encoding/json"

	eventTypeModels "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes/models"
)

// HostInfo публичные данные владельца страницы бронирования
type HostInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PublicEventTypeResponse HTTP response model
type PublicEventTypeResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Color           string          `json:"color"`
	Locations       json.RawMessage `json:"locations,omitempty"`
	Questions       json.RawMessage `json:"questions,omitempty"`
	Host            *HostInfo       `json:"host,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *eventTypeModels.PublicEventTypeResponse, host *HostInfo) *PublicEventTypeResponse {
	return &PublicEventTypeResponse{
		ID:              resp.ID,
		Name:            resp.Name,
		Slug:            resp.Slug,
		Description:     resp.Description,
		DurationMinutes: resp.DurationMinutes,
		Color:           resp.Color,
		Locations:       resp.Locations,
		Questions:       resp.Questions,
		Host:            host,
	}
}
