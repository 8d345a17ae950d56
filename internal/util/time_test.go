package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	// Reset global provider before tests
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()
	assert.Equal(t, time.Local, GetTimeProvider().Location())

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"local timezone", "Local", false},
		{"UTC timezone", "UTC", false},
		{"valid timezone Europe/Berlin", "Europe/Berlin", false},
		{"invalid timezone", "Invalid/Timezone", true},
		{"empty timezone defaults to Local", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider().Location())
		})
	}
}

func TestStartOfDayAndDayKey(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("Europe/Berlin"))
	tp := GetTimeProvider()

	// 23:30 UTC is already the next day in Berlin (UTC+2 in May)
	instant := time.Date(2020, 5, 1, 23, 30, 0, 0, time.UTC)
	day := tp.StartOfDay(instant)
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.True(t, day.Equal(time.Date(2020, 5, 1, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, day.UnixMilli(), tp.DayKey(instant.UnixMilli()))

	require.NoError(t, InitializeTimeProvider("UTC"))
	assert.Equal(t, "2020-05-01", FormatDay(instant))
	assert.Equal(t, "2020-05-01 23:30", FormatTimestamp(instant))
}

func TestParseISO8601(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"2020-05-01T10:00:00Z", time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2020-05-01T12:00:00+02:00", time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2020-05-01T10:00:00.250Z", time.Date(2020, 5, 1, 10, 0, 0, 250e6, time.UTC), false},
		{"2020-05-01T10:00:00", time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2020-05-01T10:00", time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), false},
		{"2020-05-01", time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"01/05/2020", time.Time{}, true},
		{"2020-13-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseISO8601(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestParseDay(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("Europe/Berlin"))
	tp := GetTimeProvider()

	// date-only values are local midnight
	got, err := tp.ParseDay("2020-05-02")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2020, 5, 1, 22, 0, 0, 0, time.UTC)))

	got, err = tp.ParseDay("2020-05-02T08:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2020, 5, 2, 8, 0, 0, 0, time.UTC)))

	_, err = tp.ParseDay("tomorrow")
	assert.Error(t, err)

	require.NoError(t, InitializeTimeProvider("UTC"))
}
