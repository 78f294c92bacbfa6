package scheduling

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestResolveIntervalRange(t *testing.T) {
	spec := "Monday-Friday: 09:00 - 17:00"

	// 2026-09-07 is a Monday.
	iv, ok := ResolveInterval(spec, date(t, "2026-09-07"))
	if !ok {
		t.Fatal("Monday should match Monday-Friday")
	}
	if iv.Start != "09:00:00" || iv.End != "17:00:00" {
		t.Errorf("interval = %+v", iv)
	}

	// Friday, the inclusive upper bound.
	if _, ok := ResolveInterval(spec, date(t, "2026-09-11")); !ok {
		t.Error("Friday should match Monday-Friday")
	}
	// Saturday is outside the range.
	if _, ok := ResolveInterval(spec, date(t, "2026-09-12")); ok {
		t.Error("Saturday should not match Monday-Friday")
	}
}

// A two-token hyphen expression is a range, never a list: Monday-Wednesday
// covers Tuesday.
func TestResolveIntervalTwoTokenHyphenIsRange(t *testing.T) {
	spec := "Monday-Wednesday: 09:00 - 12:00"
	if _, ok := ResolveInterval(spec, date(t, "2026-09-08")); !ok {
		t.Error("Tuesday should match the Monday-Wednesday range")
	}
}

// Three or more hyphen tokens form a list of individual days.
func TestResolveIntervalHyphenList(t *testing.T) {
	spec := "Monday-Wednesday-Friday: 09:00 - 12:00"
	if _, ok := ResolveInterval(spec, date(t, "2026-09-08")); ok {
		t.Error("Tuesday should not match the Monday-Wednesday-Friday list")
	}
	if _, ok := ResolveInterval(spec, date(t, "2026-09-09")); !ok {
		t.Error("Wednesday should match the Monday-Wednesday-Friday list")
	}
}

func TestResolveIntervalSingleDayAndClauseOrder(t *testing.T) {
	spec := "Saturday: 10:00 - 13:00, Monday-Friday: 09:00 - 17:00"

	iv, ok := ResolveInterval(spec, date(t, "2026-09-12"))
	if !ok || iv.Start != "10:00:00" || iv.End != "13:00:00" {
		t.Errorf("Saturday interval = %+v ok=%v", iv, ok)
	}

	// The first matching clause wins even when a later one also matches.
	overlapping := "Monday: 08:00 - 12:00, Monday-Friday: 09:00 - 17:00"
	iv, ok = ResolveInterval(overlapping, date(t, "2026-09-07"))
	if !ok || iv.Start != "08:00:00" {
		t.Errorf("expected first clause to win, got %+v ok=%v", iv, ok)
	}
}

func TestResolveIntervalAmPmHours(t *testing.T) {
	iv, ok := ResolveInterval("Saturday: 9:00 AM - 1:00 PM", date(t, "2026-09-12"))
	if !ok {
		t.Fatal("expected Saturday to match")
	}
	if iv.Start != "09:00:00" || iv.End != "13:00:00" {
		t.Errorf("interval = %+v", iv)
	}
}

func TestResolveIntervalFailsClosed(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{"no matching day", "Sunday: 09:00 - 12:00"},
		{"empty spec", ""},
		{"clause without colon", "Monday to Friday 9 to 5"},
		{"missing end time", "Monday: 09:00"},
		{"unparseable hours", "Monday: morning - evening"},
		{"unknown day in range", "Monday-Freitag: 09:00 - 17:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ResolveInterval(tc.spec, date(t, "2026-09-07")); ok {
				t.Errorf("spec %q should resolve to not working", tc.spec)
			}
		})
	}
}

func TestIntervalContainsInclusive(t *testing.T) {
	iv := Interval{Start: "09:00:00", End: "17:00:00"}
	for _, tm := range []string{"09:00:00", "12:30:00", "17:00:00"} {
		if !iv.Contains(tm) {
			t.Errorf("Contains(%q) = false", tm)
		}
	}
	for _, tm := range []string{"08:59:59", "17:00:01"} {
		if iv.Contains(tm) {
			t.Errorf("Contains(%q) = true", tm)
		}
	}
}
