package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/mascotacare/vetcli/internal/model"
)

// RawField tolerates a model that emits either a number or free text for
// a numeric field. Anything else (null, object, array) leaves both nil.
type RawField struct {
	Number *float64
	Text   *string
}

func (f *RawField) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Number = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Text = &s
		return nil
	}
	f.Number = nil
	f.Text = nil
	return nil
}

// AsText returns the field as display text, formatting numbers without
// a decimal tail.
func (f RawField) AsText() string {
	if f.Text != nil {
		return *f.Text
	}
	if f.Number != nil {
		return strconv.FormatFloat(*f.Number, 'f', -1, 64)
	}
	return ""
}

var leadingDigits = regexp.MustCompile(`(\d+)`)

// CoerceFrequency maps a raw frequency field onto hours. Digits win; a
// day word means daily, a week word weekly. Unrecognizable input falls
// back to daily.
func CoerceFrequency(f RawField) int {
	if f.Number != nil {
		return int(*f.Number)
	}
	if f.Text != nil {
		t := foldDiacritics(strings.ToLower(*f.Text))
		if m := leadingDigits.FindStringSubmatch(t); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
		if strings.Contains(t, "dia") || strings.Contains(t, "day") {
			return 24
		}
		if strings.Contains(t, "semana") || strings.Contains(t, "week") {
			return 168
		}
	}
	return 24
}

// CoerceDuration maps a raw duration field onto days. A digit paired
// with a week word is multiplied by 7, with a month word by 30.
// Unrecognizable input falls back to a week.
func CoerceDuration(f RawField) int {
	if f.Number != nil {
		return int(*f.Number)
	}
	if f.Text != nil {
		t := foldDiacritics(strings.ToLower(*f.Text))
		if m := leadingDigits.FindStringSubmatch(t); m != nil {
			n, _ := strconv.Atoi(m[1])
			if strings.Contains(t, "semana") || strings.Contains(t, "week") {
				return n * 7
			}
			if strings.Contains(t, "mes") || strings.Contains(t, "month") {
				return n * 30
			}
			return n
		}
	}
	return 7
}

// coerceNotes accepts note entries as bare strings or as objects that
// already carry a content field. Anything else becomes an empty note,
// which draft commit later filters out.
func coerceNotes(raws []json.RawMessage) []model.NoteContent {
	notes := make([]model.NoteContent, 0, len(raws))
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			notes = append(notes, model.NoteContent{Content: s})
			continue
		}
		var obj model.NoteContent
		if err := json.Unmarshal(raw, &obj); err == nil {
			notes = append(notes, obj)
			continue
		}
		notes = append(notes, model.NoteContent{})
	}
	return notes
}
