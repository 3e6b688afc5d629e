package calendarlinks

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Google(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC)

	links := Build("Intro Call", start, end, "Quick sync", "Zoom")

	parsed, err := url.Parse(links.Google)
	require.NoError(t, err)

	assert.Equal(t, "calendar.google.com", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Intro Call", q.Get("text"))
	assert.Equal(t, "20260309T090000/20260309T093000", q.Get("dates"))
	assert.Equal(t, "Quick sync", q.Get("details"))
	assert.Equal(t, "Zoom", q.Get("location"))
}

func TestBuild_Outlook(t *testing.T) {
	start := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

	links := Build("Design Review", start, end, "", "")

	parsed, err := url.Parse(links.Outlook)
	require.NoError(t, err)

	assert.Equal(t, "outlook.live.com", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "addevent", q.Get("rru"))
	assert.Equal(t, "Design Review", q.Get("subject"))
	assert.Equal(t, "2026-03-09T14:00:00", q.Get("startdt"))
	assert.Equal(t, "2026-03-09T15:00:00", q.Get("enddt"))

	// Пустые поля не попадают в ссылку
	assert.False(t, q.Has("body"))
	assert.False(t, q.Has("location"))
}
