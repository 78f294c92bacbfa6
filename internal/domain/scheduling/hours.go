package scheduling

import (
	"strings"
	"time"

	"github.com/clinicvoice/clinicvoice/internal/platform/timetext"
)

// Interval is a working window in HH:MM:SS form. Because both endpoints are
// zero-padded 24-hour strings, lexicographic comparison orders them
// correctly.
type Interval struct {
	Start string
	End   string
}

// Contains reports whether t falls inside the interval, inclusive at both
// ends.
func (iv Interval) Contains(t string) bool {
	return iv.Start <= t && t <= iv.End
}

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func weekdayIndex(day string) int {
	for i, d := range weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// ResolveInterval evaluates a working-hours expression against a date and
// returns the window for that day. The grammar is comma-separated clauses of
// the form "<days>: <start> - <end>" where <days> is a single weekday, a
// two-token hyphen range ("Monday-Friday", inclusive in Monday-first order),
// or a hyphen-separated list of three or more weekdays. The first matching
// clause wins. Any parse failure means not working; a closed clinic is safer
// than a misread one.
//
// A two-token hyphen expression is always read as a range, so
// "Monday-Wednesday" covers Tuesday. A list of exactly two days cannot be
// written in this grammar; use two clauses instead.
func ResolveInterval(spec string, date time.Time) (Interval, bool) {
	day := date.Weekday().String()

	for _, clause := range strings.Split(spec, ", ") {
		if !strings.Contains(clause, ":") {
			continue
		}
		parts := strings.SplitN(clause, ":", 2)
		daysPart := strings.TrimSpace(parts[0])
		hoursPart := strings.TrimSpace(parts[1])

		if !dayMatches(daysPart, day) {
			continue
		}

		hours := strings.Split(hoursPart, " - ")
		if len(hours) != 2 {
			return Interval{}, false
		}
		start, err := timetext.Normalize(strings.TrimSpace(hours[0]))
		if err != nil {
			return Interval{}, false
		}
		end, err := timetext.Normalize(strings.TrimSpace(hours[1]))
		if err != nil {
			return Interval{}, false
		}
		return Interval{Start: start, End: end}, true
	}

	return Interval{}, false
}

func dayMatches(daysPart, day string) bool {
	// A hyphen with surrounding spaces belongs to the hours ("09:00 - 17:00")
	// and never appears in a day selector.
	if strings.Contains(daysPart, "-") && !strings.Contains(daysPart, " - ") {
		if strings.Count(daysPart, "-") == 1 {
			bounds := strings.Split(daysPart, "-")
			startIdx := weekdayIndex(strings.TrimSpace(bounds[0]))
			endIdx := weekdayIndex(strings.TrimSpace(bounds[1]))
			dayIdx := weekdayIndex(day)
			if startIdx < 0 || endIdx < 0 || dayIdx < 0 {
				return false
			}
			return startIdx <= dayIdx && dayIdx <= endIdx
		}
		for _, d := range strings.Split(daysPart, "-") {
			if strings.TrimSpace(d) == day {
				return true
			}
		}
		return false
	}
	return daysPart == day
}
