package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"09:00", 540},
		{"15:04", 904},
		{"00:00", 0},
		{"23:59", 1439},
		{"3:04 PM", 904},
		{"3:04 pm", 904},
		{"9 AM", 540},
		{"15", 900},
		{" 09:00 ", 540},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, "ParseClock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseClock(%q)", tt.in)
	}

	for _, in := range []string{"", "25:00", "nine", "9:99"} {
		_, err := ParseClock(in)
		assert.Error(t, err, "ParseClock(%q)", in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestFormatHM(t *testing.T) {
	assert.Equal(t, "0:00", FormatHM(0))
	assert.Equal(t, "0:30", FormatHM(30))
	assert.Equal(t, "8:00", FormatHM(480))
	assert.Equal(t, "39:30", FormatHM(2370))
	assert.Equal(t, "-1:15", FormatHM(-75))
}
