package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// DaySchedule is one weekday entry of a working-hours template.
type DaySchedule struct {
	Enabled bool             `json:"enabled"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
}

// WeekSchedule is a host's recurring weekly working-hours template.
// Disabled days contribute no bookable slots.
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday returns the schedule entry for the given weekday.
func (w WeekSchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{Enabled: false}
	}
}

// Validate checks every enabled day has well-formed bounds with
// start strictly before end.
func (w WeekSchedule) Validate() error {
	days := []struct {
		name     string
		schedule DaySchedule
	}{
		{"monday", w.Monday},
		{"tuesday", w.Tuesday},
		{"wednesday", w.Wednesday},
		{"thursday", w.Thursday},
		{"friday", w.Friday},
		{"saturday", w.Saturday},
		{"sunday", w.Sunday},
	}

	for _, d := range days {
		if !d.schedule.Enabled {
			continue
		}
		if err := d.schedule.Start.Validate(); err != nil {
			return fmt.Errorf("%s: start: %w", d.name, err)
		}
		if err := d.schedule.End.Validate(); err != nil {
			return fmt.Errorf("%s: end: %w", d.name, err)
		}
		if !d.schedule.Start.IsBefore(d.schedule.End) {
			return fmt.Errorf("%s: start %s must be before end %s", d.name, d.schedule.Start, d.schedule.End)
		}
	}
	return nil
}

// DefaultWeekSchedule returns the bootstrap template: Monday-Friday
// 09:00-17:00 enabled, weekend disabled.
func DefaultWeekSchedule() WeekSchedule {
	workday := DaySchedule{Enabled: true, Start: "09:00", End: "17:00"}
	weekend := DaySchedule{Enabled: false, Start: "09:00", End: "17:00"}
	return WeekSchedule{
		Monday:    workday,
		Tuesday:   workday,
		Wednesday: workday,
		Thursday:  workday,
		Friday:    workday,
		Saturday:  weekend,
		Sunday:    weekend,
	}
}

// EmailNotificationSettings controls which booking emails are sent.
type EmailNotificationSettings struct {
	Enabled          bool `json:"enabled"`
	NewBooking       bool `json:"newBooking"`
	CancelledBooking bool `json:"cancelledBooking"`
}

// SMSNotificationSettings controls booking SMS delivery.
type SMSNotificationSettings struct {
	Enabled bool `json:"enabled"`
}

// NotificationSettings groups the host's delivery preferences.
type NotificationSettings struct {
	Email EmailNotificationSettings `json:"email"`
	SMS   SMSNotificationSettings   `json:"sms"`
}

// DefaultNotificationSettings returns the bootstrap preferences:
// everything opt-in, nothing delivered until the host enables it.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Email: EmailNotificationSettings{
			Enabled:          false,
			NewBooking:       true,
			CancelledBooking: true,
		},
		SMS: SMSNotificationSettings{Enabled: false},
	}
}

// Settings is a host's per-user configuration record (1-1 with user).
// Contact fields tell the dispatcher where to notify the host.
type Settings struct {
	ID                   int64
	UserID               int64
	WorkingHours         WeekSchedule
	NotificationSettings NotificationSettings
	DisplayName          string
	NotifyEmail          string
	NotifyPhone          *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
