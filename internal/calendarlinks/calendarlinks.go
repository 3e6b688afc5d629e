// Package calendarlinks builds "add to calendar" URLs for confirmed bookings.
package calendarlinks

import (
	"fmt"
	"net/url"
	"time"
)

// Links holds add-to-calendar URLs for the major providers.
type Links struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
}

const (
	googleTimeLayout  = "20060102T150405"
	outlookTimeLayout = "2006-01-02T15:04:05"
)

// Build returns calendar links for an event. Times are rendered as
// floating local times, matching how slots are presented to attendees.
func Build(title string, start, end time.Time, description, location string) Links {
	return Links{
		Google:  google(title, start, end, description, location),
		Outlook: outlook(title, start, end, description, location),
	}
}

func google(title string, start, end time.Time, description, location string) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", fmt.Sprintf("%s/%s", start.Format(googleTimeLayout), end.Format(googleTimeLayout)))
	if description != "" {
		q.Set("details", description)
	}
	if location != "" {
		q.Set("location", location)
	}
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

func outlook(title string, start, end time.Time, description, location string) string {
	q := url.Values{}
	q.Set("path", "/calendar/action/compose")
	q.Set("rru", "addevent")
	q.Set("subject", title)
	q.Set("startdt", start.Format(outlookTimeLayout))
	q.Set("enddt", end.Format(outlookTimeLayout))
	if description != "" {
		q.Set("body", description)
	}
	if location != "" {
		q.Set("location", location)
	}
	return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode()
}
