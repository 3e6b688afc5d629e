package domain

import (
	"encoding/json"
	"time"
)

// EventType is a reusable meeting template published by a host.
// Its slug is globally unique and addressable on the public side.
type EventType struct {
	ID              int64
	UserID          int64
	Name            string
	Slug            string
	Description     *string
	DurationMinutes int
	Color           string
	IsActive        bool
	Locations       json.RawMessage // location options (Google Meet, Zoom, ...)
	Questions       json.RawMessage // additional questions asked at booking time
	BookingRules    json.RawMessage // min/max notice, buffers; stored, not applied to slot generation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable reports whether the event type can accept public bookings.
func (t *EventType) IsBookable() bool {
	return t.IsActive && t.DurationMinutes > 0
}

// EventTypeUpdate enumerates the updatable fields of an event type.
// Nil fields are left untouched. A name change forces a slug
// regeneration at the service layer.
type EventTypeUpdate struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Color           *string
	IsActive        *bool
	Locations       json.RawMessage
	Questions       json.RawMessage
	BookingRules    json.RawMessage
}

// IsEmpty reports whether the update changes nothing.
func (u *EventTypeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.DurationMinutes == nil &&
		u.Color == nil && u.IsActive == nil && u.Locations == nil &&
		u.Questions == nil && u.BookingRules == nil
}
