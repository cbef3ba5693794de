package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mascotacare/vetcli/internal/model"
)

// Clock is an explicit time of day found in free text.
type Clock struct {
	Hour   int
	Minute int
}

// clockPattern pairs a pattern with its extractor so each entry is
// independently testable. Patterns are tried in order; first match wins.
type clockPattern struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) (Clock, bool)
}

func twoFieldClock(m []string) (Clock, bool) {
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return Clock{}, false
	}
	return Clock{Hour: h, Minute: min}, true
}

func meridiemClock(hourIdx, minuteIdx, merIdx int) func(m []string) (Clock, bool) {
	return func(m []string) (Clock, bool) {
		h, _ := strconv.Atoi(m[hourIdx])
		min := 0
		if minuteIdx > 0 {
			min, _ = strconv.Atoi(m[minuteIdx])
		}
		if h > 23 || min > 59 {
			return Clock{}, false
		}
		// Hours past 12 keep their value; "15 30 pm" is already 15:30.
		mer := strings.ToLower(m[merIdx])
		if mer == "pm" && h < 12 {
			h += 12
		} else if mer == "am" && h == 12 {
			h = 0
		}
		return Clock{Hour: h, Minute: min}, true
	}
}

func bareHourClock(m []string) (Clock, bool) {
	h, _ := strconv.Atoi(m[1])
	if h > 23 {
		return Clock{}, false
	}
	return Clock{Hour: h}, true
}

// The two-field forms come first so "a las 12 y 30" never resolves as a
// bare "a las 12". The bare forms exist for phrases like "mañana a las
// 9" and "12pm", which carry no minutes at all.
var clockPatterns = []clockPattern{
	{"hh:mm", regexp.MustCompile(`(\d{1,2}):(\d{1,2})`), twoFieldClock},
	{"a las hh:mm", regexp.MustCompile(`a las (\d{1,2}):(\d{1,2})`), twoFieldClock},
	{"a las hh y mm", regexp.MustCompile(`a las (\d{1,2}) y (\d{1,2})`), twoFieldClock},
	{"hh y/con mm", regexp.MustCompile(`(\d{1,2}) (?:y|con) (\d{1,2})`), twoFieldClock},
	{"hh.mm", regexp.MustCompile(`(\d{1,2})[.:](\d{1,2})`), twoFieldClock},
	{"hh mm am/pm", regexp.MustCompile(`(?i)(\d{1,2})(?: |:)(\d{1,2}) ?(am|pm)`), meridiemClock(1, 2, 3)},
	{"hh am/pm", regexp.MustCompile(`(?i)\b(\d{1,2}) ?(am|pm)\b`), meridiemClock(1, 0, 2)},
	{"a las hh", regexp.MustCompile(`a las (\d{1,2})\b`), bareHourClock},
}

// FindClock scans text for an explicit time of day.
func FindClock(text string) (Clock, bool) {
	for _, p := range clockPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if c, ok := p.extract(m); ok {
			return c, true
		}
	}
	return Clock{}, false
}

var (
	bareDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	fullDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}(:\d{2})?$`)
)

// ResolveStartTime turns the model's start_time text into a concrete
// local time. An explicitly mentioned clock time always wins over
// whatever time the date resolution produced.
func ResolveStartTime(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	clock, hasClock := FindClock(raw)
	folded := foldDiacritics(strings.ToLower(raw))

	var base time.Time
	switch {
	case raw == "" || folded == "hoy":
		base = now
	case bareDateRe.MatchString(raw):
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			base = now
		} else {
			// A date with no time of day inherits the current clock,
			// matching how relative dates resolve.
			base = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), now.Hour(), now.Minute(), 0, 0, time.Local)
		}
	case fullDateRe.MatchString(raw):
		parsed, err := model.ParseTime(raw)
		if err != nil {
			base = now
		} else {
			base = parsed.Time
		}
	case strings.Contains(folded, "hoy"):
		base = now
	case strings.Contains(folded, "manana"):
		base = now.AddDate(0, 0, 1)
	default:
		parsed, err := model.ParseTime(raw)
		if err != nil {
			base = now
		} else {
			base = parsed.Time
		}
	}

	if hasClock {
		return time.Date(base.Year(), base.Month(), base.Day(), clock.Hour, clock.Minute, 0, 0, time.Local)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), base.Hour(), base.Minute(), 0, 0, time.Local)
}

// FormatLocal serializes using local calendar fields, zero-padded, with
// a literal ":00" seconds field.
func FormatLocal(t time.Time) string {
	return t.Format("2006-01-02 15:04") + ":00"
}

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldDiacritics maps "mañana" and "manana" (and "día"/"dia") onto the
// same bytes so keyword checks need only one spelling.
func foldDiacritics(s string) string {
	out, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return out
}
