package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "plain time", input: "09:00", want: "09:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "missing minutes", input: "9am", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start TimeString
		add   int
		want  TimeString
	}{
		{name: "within hour", start: "09:00", add: 30, want: "09:30"},
		{name: "across hour", start: "09:45", add: 30, want: "10:15"},
		{name: "wraps past midnight", start: "23:30", add: 60, want: "00:30"},
		{name: "negative wraps back", start: "00:15", add: -30, want: "23:45"},
		{name: "zero", start: "12:00", add: 0, want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed value errors", func(t *testing.T) {
		_, err := TimeString("later").AddMinutes(10)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))

	// Некорректные значения не упорядочиваются
	assert.False(t, TimeString("bad").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("bad"))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:30").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC), got)

	// Время суток накладывается на дату, даже если в ней уже было время
	noon := time.Date(2026, 3, 9, 12, 45, 17, 0, time.UTC)
	got, err = TimeString("08:00").On(noon)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), got)

	_, err = TimeString("8am").On(date)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
