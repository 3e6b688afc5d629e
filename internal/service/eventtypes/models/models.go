package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateEventTypeRequest запрос на создание типа события
type CreateEventTypeRequest struct {
	UserID          int64           `json:"-"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Color           *string         `json:"color,omitempty"`
	Locations       json.RawMessage `json:"locations,omitempty"`
	Questions       json.RawMessage `json:"questions,omitempty"`
	BookingRules    json.RawMessage `json:"bookingRules,omitempty"`
}

// UpdateEventTypeRequest запрос на обновление типа события
// Незаполненные поля не изменяются
type UpdateEventTypeRequest struct {
	UserID          int64           `json:"-"`
	Name            *string         `json:"name,omitempty"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Color           *string         `json:"color,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"`
	Locations       json.RawMessage `json:"locations,omitempty"`
	Questions       json.RawMessage `json:"questions,omitempty"`
	BookingRules    json.RawMessage `json:"bookingRules,omitempty"`
}

// ToDomainUpdate конвертирует request в domain модель обновления
func (r *UpdateEventTypeRequest) ToDomainUpdate() domain.EventTypeUpdate {
	return domain.EventTypeUpdate{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Color:           r.Color,
		IsActive:        r.IsActive,
		Locations:       r.Locations,
		Questions:       r.Questions,
		BookingRules:    r.BookingRules,
	}
}

// Response модели

// EventTypeResponse ответ с данными типа события
type EventTypeResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Color           string          `json:"color"`
	IsActive        bool            `json:"isActive"`
	Locations       json.RawMessage `json:"locations,omitempty"`
	Questions       json.RawMessage `json:"questions,omitempty"`
	BookingRules    json.RawMessage `json:"bookingRules,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PublicEventTypeResponse публичный ответ без внутренних полей владельца
type PublicEventTypeResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"-"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Color           string          `json:"color"`
	Locations       json.RawMessage `json:"locations,omitempty"`
	Questions       json.RawMessage `json:"questions,omitempty"`
}

// EventTypeListResponse ответ со списком типов событий
type EventTypeListResponse struct {
	EventTypes []EventTypeResponse `json:"eventTypes"`
}

// Методы конвертации

// FromDomainEventType конвертирует domain модель в DTO
func FromDomainEventType(t *domain.EventType) *EventTypeResponse {
	if t == nil {
		return nil
	}

	return &EventTypeResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Name:            t.Name,
		Slug:            t.Slug,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		Color:           t.Color,
		IsActive:        t.IsActive,
		Locations:       t.Locations,
		Questions:       t.Questions,
		BookingRules:    t.BookingRules,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainEventTypePublic конвертирует domain модель в публичный DTO
func FromDomainEventTypePublic(t *domain.EventType) *PublicEventTypeResponse {
	if t == nil {
		return nil
	}

	return &PublicEventTypeResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Name:            t.Name,
		Slug:            t.Slug,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		Color:           t.Color,
		Locations:       t.Locations,
		Questions:       t.Questions,
	}
}

// FromDomainEventTypeList конвертирует список domain моделей в DTO
func FromDomainEventTypeList(types []*domain.EventType) *EventTypeListResponse {
	resp := &EventTypeListResponse{
		EventTypes: make([]EventTypeResponse, 0, len(types)),
	}
	for _, t := range types {
		resp.EventTypes = append(resp.EventTypes, *FromDomainEventType(t))
	}
	return resp
}
