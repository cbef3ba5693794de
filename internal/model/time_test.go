package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeAcceptsBackendShapes(t *testing.T) {
	cases := []string{
		"2024-01-02 09:30:00",
		"2024-01-02T09:30:00",
		"2024-01-02 09:30",
	}
	for _, in := range cases {
		parsed, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.January, parsed.Month())
		assert.Equal(t, 2, parsed.Day())
		assert.Equal(t, 9, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	parsed, err := ParseTime("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15 00:00:00", parsed.String())
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	_, err := ParseTime("next tuesday-ish")
	assert.Error(t, err)
}

func TestTimeRoundTripKeepsLocalFields(t *testing.T) {
	// A serialized dose timestamp must come back with the exact same
	// calendar fields, no UTC-shift drift.
	original := NewTime(time.Date(2024, 6, 1, 23, 45, 0, 0, time.Local))

	data, err := json.Marshal(Dose{ID: 1, ScheduledTime: original, Status: DoseStatusPending})
	require.NoError(t, err)

	var out Dose
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, original.Year(), out.ScheduledTime.Year())
	assert.Equal(t, original.Month(), out.ScheduledTime.Month())
	assert.Equal(t, original.Day(), out.ScheduledTime.Day())
	assert.Equal(t, original.Hour(), out.ScheduledTime.Hour())
	assert.Equal(t, original.Minute(), out.ScheduledTime.Minute())
}

func TestTimeMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}
