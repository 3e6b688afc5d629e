package domain

import (
	"encoding/json"
	"time"
)

// Event represents a scheduled meeting on a host's calendar. Events
// created through an event type carry the attendee details of the
// booking; ad hoc events may leave them empty.
type Event struct {
	ID          int64
	UserID      int64  // host owning the calendar
	EventTypeID *int64 // nil for ad hoc events
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Description *string

	AttendeeName  *string
	AttendeeEmail *string
	AttendeePhone *string
	Location      *string
	Answers       json.RawMessage // free-form answers to event type questions

	IsConfirmed bool
	CreatedAt   time.Time
}

// OverlapsInterval reports whether the event's [StartTime, EndTime)
// interval strictly overlaps [start, end). Touching endpoints do not
// count as an overlap.
func (e *Event) OverlapsInterval(start, end time.Time) bool {
	return e.StartTime.Before(end) && e.EndTime.After(start)
}

// DurationMinutes returns the event length in whole minutes.
func (e *Event) DurationMinutes() int {
	return int(e.EndTime.Sub(e.StartTime) / time.Minute)
}

// EventStatusFilter selects events relative to the current day.
type EventStatusFilter string

const (
	EventStatusToday    EventStatusFilter = "today"
	EventStatusUpcoming EventStatusFilter = "upcoming"
	EventStatusPast     EventStatusFilter = "past"
)

// Valid reports whether the filter value is one of the known statuses.
func (f EventStatusFilter) Valid() bool {
	switch f {
	case EventStatusToday, EventStatusUpcoming, EventStatusPast:
		return true
	}
	return false
}

// EventsFilter describes the host's event listing query.
type EventsFilter struct {
	UserID int64
	Status *EventStatusFilter // nil = all events
	Query  *string            // substring match on title/description
	Page   int                // 1-based
}

// EventUpdate enumerates the updatable fields of an event. Nil fields
// are left untouched.
type EventUpdate struct {
	Title         *string
	StartTime     *time.Time
	EndTime       *time.Time
	Description   *string
	AttendeeName  *string
	AttendeeEmail *string
	AttendeePhone *string
	Location      *string
	IsConfirmed   *bool
}

// ChangesTimes reports whether the update moves the event interval.
func (u *EventUpdate) ChangesTimes() bool {
	return u.StartTime != nil || u.EndTime != nil
}
