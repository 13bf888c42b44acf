package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayLocation(t *testing.T) {
	loc := DisplayLocation("Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", loc.String())

	assert.Equal(t, time.UTC, DisplayLocation(""))
	assert.Equal(t, time.UTC, DisplayLocation("Not/AZone"))
}

func TestFormatInZone(t *testing.T) {
	loc := DisplayLocation("Asia/Kolkata")
	ts := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-31 00:00:00", FormatInZone(ts, loc))
	assert.Equal(t, "2026-08-30T18:30:00Z", FormatUTC(ts))
}

func TestParseFlexible(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2026-08-30T18:30:00Z", time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)},
		{"2026-08-30 18:30:00", time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)},
		{"2026-08-30 18:30", time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)},
		{"2026-08-30", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseFlexible(tc.input)
		require.NoError(t, err, tc.input)
		assert.True(t, tc.want.Equal(got), "input %s", tc.input)
	}

	_, err := ParseFlexible("")
	assert.Error(t, err)
	_, err = ParseFlexible("yesterday-ish")
	assert.Error(t, err)
}
