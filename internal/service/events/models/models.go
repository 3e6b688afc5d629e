package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном фильтре статуса
	ErrInvalidStatus = errors.New("invalid event status filter")
)

// Request модели

// CreateEventRequest запрос на создание события вручную (ad hoc)
type CreateEventRequest struct {
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
}

// UpdateEventRequest запрос на обновление события
// Незаполненные поля не изменяются
type UpdateEventRequest struct {
	UserID      int64      `json:"-"`
	Title       *string    `json:"title,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// ToDomainUpdate конвертирует request в domain модель обновления
func (r *UpdateEventRequest) ToDomainUpdate() domain.EventUpdate {
	return domain.EventUpdate{
		Title:       r.Title,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
		Location:    r.Location,
	}
}

// ListEventsRequest запрос на получение событий пользователя
type ListEventsRequest struct {
	UserID int64   `json:"-"`
	Status *string `json:"status,omitempty"` // today / upcoming / past
	Query  *string `json:"q,omitempty"`
	Page   int     `json:"page,omitempty"` // нумерация с 1
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListEventsRequest) ToDomainFilter() (domain.EventsFilter, error) {
	filter := domain.EventsFilter{
		UserID: r.UserID,
		Query:  r.Query,
		Page:   r.Page,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	if r.Status != nil && *r.Status != "" {
		status := domain.EventStatusFilter(*r.Status)
		if !status.Valid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// EventResponse ответ с данными события
type EventResponse struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	EventTypeID   *int64          `json:"eventTypeId,omitempty"`
	Title         string          `json:"title"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	Description   *string         `json:"description,omitempty"`
	AttendeeName  *string         `json:"attendeeName,omitempty"`
	AttendeeEmail *string         `json:"attendeeEmail,omitempty"`
	AttendeePhone *string         `json:"attendeePhone,omitempty"`
	Location      *string         `json:"location,omitempty"`
	Answers       json.RawMessage `json:"answers,omitempty"`
	IsConfirmed   bool            `json:"isConfirmed"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PublicEventResponse публичный ответ о бронировании без внутренних полей
type PublicEventResponse struct {
	ID           int64     `json:"id"`
	EventTypeID  int64     `json:"eventTypeId"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	AttendeeName *string   `json:"attendeeName,omitempty"`
	Location     *string   `json:"location,omitempty"`
	IsConfirmed  bool      `json:"isConfirmed"`
}

// EventListResponse ответ со списком событий и пагинацией
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
}

// Методы конвертации

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	return &EventResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		EventTypeID:   e.EventTypeID,
		Title:         e.Title,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Description:   e.Description,
		AttendeeName:  e.AttendeeName,
		AttendeeEmail: e.AttendeeEmail,
		AttendeePhone: e.AttendeePhone,
		Location:      e.Location,
		Answers:       e.Answers,
		IsConfirmed:   e.IsConfirmed,
		CreatedAt:     e.CreatedAt,
	}
}

// FromDomainEventPublic конвертирует domain модель в публичный DTO
func FromDomainEventPublic(e *domain.Event) *PublicEventResponse {
	if e == nil || e.EventTypeID == nil {
		return nil
	}

	return &PublicEventResponse{
		ID:           e.ID,
		EventTypeID:  *e.EventTypeID,
		Title:        e.Title,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		AttendeeName: e.AttendeeName,
		Location:     e.Location,
		IsConfirmed:  e.IsConfirmed,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO с пагинацией
func FromDomainEventList(events []*domain.Event, total, page, perPage int) *EventListResponse {
	resp := &EventListResponse{
		Events:  make([]EventResponse, 0, len(events)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, e := range events {
		resp.Events = append(resp.Events, *FromDomainEvent(e))
	}
	if perPage > 0 {
		resp.TotalPages = (total + perPage - 1) / perPage
	}
	return resp
}
