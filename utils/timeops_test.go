package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"-1:00", 0, true},
		{"banana", 0, true},
		{"", 0, true},
		{"10:30xyz", 0, true},
		{"x10:30", 0, true},
		{"10:3", 0, true},
		{"1030", 0, true},
		{"10:30:00", 0, true},
		{"+9:30", 0, true},
		{" 9:30", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("14/09/2026")
	assert.Error(t, err)
}

func TestLocalInstant(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	// 10:00 in Buenos Aires (UTC-3) is 13:00 UTC.
	instant := LocalInstant(date, 10*60)
	assert.Equal(t, time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC), instant)

	// 22:30 local crosses into the next UTC day.
	instant = LocalInstant(date, 22*60+30)
	assert.Equal(t, time.Date(2026, 9, 15, 1, 30, 0, 0, time.UTC), instant)
}

func TestIsPast(t *testing.T) {
	now := time.Now().In(Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	assert.True(t, IsPast(today.AddDate(0, 0, -1), 12*60))
	assert.False(t, IsPast(today.AddDate(0, 0, 1), 12*60))
}
