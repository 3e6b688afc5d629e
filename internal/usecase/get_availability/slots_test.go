package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// 2026-03-09 — понедельник
var (
	monday   = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	farPast  = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	mondayAt = func(hour, min int) time.Time {
		return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
	}
)

func event(start, end time.Time) *domain.Event {
	return &domain.Event{UserID: 1, StartTime: start, EndTime: end}
}

func TestComputeSlots_BackToBackGeneration(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}

	slots, err := computeSlots(schedule, nil, 30, monday, monday, farPast)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(9, 0), slots[0].Start)
	assert.Equal(t, mondayAt(9, 30), slots[0].End)
	assert.Equal(t, mondayAt(9, 30), slots[1].Start)
	assert.Equal(t, mondayAt(10, 0), slots[1].End)
}

func TestComputeSlots_PartialSlotDropped(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:15"},
	}

	// 09:00-09:30, 09:30-10:00; хвост 10:00-10:15 короче слота
	slots, err := computeSlots(schedule, nil, 30, monday, monday, farPast)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(10, 0), slots[1].End)
}

func TestComputeSlots_OverlapRemovesSlot(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	events := []*domain.Event{event(mondayAt(9, 0), mondayAt(9, 30))}

	slots, err := computeSlots(schedule, events, 30, monday, monday, farPast)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, mondayAt(9, 30), slots[0].Start)
}

func TestComputeSlots_TouchingEndpointsDoNotConflict(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	// Событие заканчивается ровно в 09:30 — слот 09:30-10:00 свободен
	events := []*domain.Event{event(mondayAt(9, 0), mondayAt(9, 30))}

	slots, err := computeSlots(schedule, events, 30, monday, monday, farPast)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, mondayAt(9, 30), slots[0].Start)
	assert.Equal(t, mondayAt(10, 0), slots[0].End)
}

func TestComputeSlots_OneMinuteOverlapConflicts(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
	}
	events := []*domain.Event{event(mondayAt(9, 29), mondayAt(9, 31))}

	slots, err := computeSlots(schedule, events, 30, monday, monday, farPast)
	require.NoError(t, err)

	// Оба слота задеты событием 09:29-09:31
	assert.Empty(t, slots)
}

func TestComputeSlots_DisabledDaySkipped(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: false, Start: "09:00", End: "17:00"},
	}

	slots, err := computeSlots(schedule, nil, 30, monday, monday, farPast)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_ReversedRangeEmpty(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "17:00"},
	}

	slots, err := computeSlots(schedule, nil, 30, monday, monday.AddDate(0, 0, -7), farPast)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_NonPositiveDurationEmpty(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "17:00"},
	}

	for _, d := range []int{0, -15} {
		slots, err := computeSlots(schedule, nil, d, monday, monday, farPast)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestComputeSlots_PastSlotsFiltered(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "11:00"},
	}

	// Сейчас 09:45 — слоты 09:00 и 09:30 уже начались
	now := mondayAt(9, 45)
	slots, err := computeSlots(schedule, nil, 30, monday, monday, now)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(10, 0), slots[0].Start)
	assert.Equal(t, mondayAt(10, 30), slots[1].Start)
}

func TestComputeSlots_MultiDayChronological(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday:  domain.DaySchedule{Enabled: true, Start: "09:00", End: "10:00"},
		Tuesday: domain.DaySchedule{Enabled: true, Start: "14:00", End: "15:00"},
	}

	slots, err := computeSlots(schedule, nil, 60, monday, monday.AddDate(0, 0, 1), farPast)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Before(slots[1].Start))
	assert.Equal(t, mondayAt(9, 0), slots[0].Start)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), slots[1].Start)
}

func TestComputeSlots_Idempotent(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "09:00", End: "12:00"},
	}
	events := []*domain.Event{event(mondayAt(10, 0), mondayAt(10, 30))}

	first, err := computeSlots(schedule, events, 30, monday, monday, farPast)
	require.NoError(t, err)
	second, err := computeSlots(schedule, events, 30, monday, monday, farPast)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSlots_MalformedScheduleFails(t *testing.T) {
	schedule := domain.WeekSchedule{
		Monday: domain.DaySchedule{Enabled: true, Start: "9am", End: "17:00"},
	}

	_, err := computeSlots(schedule, nil, 30, monday, monday, farPast)
	assert.Error(t, err)
}
