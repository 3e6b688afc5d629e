package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_OverlapsInterval(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 9, h, m, 0, 0, time.UTC)
	}
	event := &Event{StartTime: at(10, 0), EndTime: at(11, 0)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical interval", start: at(10, 0), end: at(11, 0), want: true},
		{name: "contained inside", start: at(10, 15), end: at(10, 45), want: true},
		{name: "covers event", start: at(9, 0), end: at(12, 0), want: true},
		{name: "overlaps start", start: at(9, 30), end: at(10, 30), want: true},
		{name: "overlaps end", start: at(10, 30), end: at(11, 30), want: true},
		{name: "one minute overlap", start: at(10, 59), end: at(11, 59), want: true},
		{name: "touches end", start: at(11, 0), end: at(12, 0), want: false},
		{name: "touches start", start: at(9, 0), end: at(10, 0), want: false},
		{name: "fully before", start: at(8, 0), end: at(9, 0), want: false},
		{name: "fully after", start: at(12, 0), end: at(13, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, event.OverlapsInterval(tt.start, tt.end))
		})
	}
}

func TestEventStatusFilter_Valid(t *testing.T) {
	assert.True(t, EventStatusToday.Valid())
	assert.True(t, EventStatusUpcoming.Valid())
	assert.True(t, EventStatusPast.Valid())
	assert.False(t, EventStatusFilter("cancelled").Valid())
	assert.False(t, EventStatusFilter("").Valid())
}
