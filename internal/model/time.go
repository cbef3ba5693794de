package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the canonical wire format for schedule timestamps. The
// backend speaks local calendar fields, never UTC offsets, so values are
// parsed and rendered in the local zone to avoid shifting a 09:00 dose
// to a different hour.
const TimeLayout = "2006-01-02 15:04:05"

var parseLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time wraps time.Time with the backend's tolerant parsing and the
// canonical local serialization.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// ParseTime accepts any of the timestamp shapes the backend emits.
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, nil
	}
	for _, layout := range parseLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return Time{Time: t}, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Time{Time: t}, nil
		}
	}
	return Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// String renders the canonical local format with zero-padded fields.
func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
