package domain

import "time"

// TimeSlot is a derived open interval a visitor can book. It is always
// exactly one event type duration wide and never persisted.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot width.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether two slots strictly overlap. Touching
// endpoints do not count.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}
