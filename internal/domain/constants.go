package domain

// Default values
const (
	DefaultEventTypeColor = "#3B82F6"
	DefaultEventsPerPage  = 10
)

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480 // 8 hours
	MaxNameLength      = 255
	MaxSlugLength      = 255
	MaxReasonLength    = 500
	SlugSuffixLength   = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
