package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekSchedule_Validate(t *testing.T) {
	t.Run("default schedule is valid", func(t *testing.T) {
		assert.NoError(t, DefaultWeekSchedule().Validate())
	})

	t.Run("disabled day skips validation", func(t *testing.T) {
		schedule := DefaultWeekSchedule()
		schedule.Saturday = DaySchedule{Enabled: false, Start: "garbage", End: ""}
		assert.NoError(t, schedule.Validate())
	})

	t.Run("enabled day with malformed start", func(t *testing.T) {
		schedule := DefaultWeekSchedule()
		schedule.Monday = DaySchedule{Enabled: true, Start: "9am", End: "17:00"}
		err := schedule.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "monday")
	})

	t.Run("start equal to end rejected", func(t *testing.T) {
		schedule := DefaultWeekSchedule()
		schedule.Friday = DaySchedule{Enabled: true, Start: "12:00", End: "12:00"}
		assert.Error(t, schedule.Validate())
	})

	t.Run("start after end rejected", func(t *testing.T) {
		schedule := DefaultWeekSchedule()
		schedule.Wednesday = DaySchedule{Enabled: true, Start: "18:00", End: "09:00"}
		assert.Error(t, schedule.Validate())
	})
}

func TestWeekSchedule_ForWeekday(t *testing.T) {
	schedule := DefaultWeekSchedule()

	monday := schedule.ForWeekday(time.Monday)
	assert.True(t, monday.Enabled)
	assert.Equal(t, "09:00", monday.Start.String())

	sunday := schedule.ForWeekday(time.Sunday)
	assert.False(t, sunday.Enabled)
}

func TestDefaultNotificationSettings(t *testing.T) {
	defaults := DefaultNotificationSettings()
	assert.False(t, defaults.Email.Enabled)
	assert.False(t, defaults.SMS.Enabled)
}
