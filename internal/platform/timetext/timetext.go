// Package timetext canonicalizes the time-of-day strings that arrive from
// the voice layer. Callers pass through whatever the dialogue model
// extracted ("2:30 PM", "14:30", an ISO timestamp) and always get back a
// zero-padded 24-hour HH:MM:SS string for storage and comparison.
package timetext

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognizedFormat is returned by Normalize when no supported pattern
// matches. The input is still returned unchanged so the caller can log the
// warning and proceed rather than aborting the operation.
var ErrUnrecognizedFormat = errors.New("time format not recognized")

var (
	isoPattern    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})`)
	amPmPattern   = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*(AM|PM)`)
	hhmmPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	hhmmssPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

// fallback layouts tried when none of the fast-path patterns match.
var fallbackLayouts = []string{"15:04", "3:04 PM", "15:04:05", "3:04:05 PM"}

// Normalize converts a time-of-day string to HH:MM:SS (24-hour, zero-padded).
// Accepted forms, in priority order: ISO-8601 timestamp prefix, 12-hour with
// AM/PM (optional seconds), bare HH:MM, full HH:MM:SS, then a small set of
// layout fallbacks. On total failure the input is returned unchanged along
// with ErrUnrecognizedFormat; the failure is advisory, not fatal.
// Normalize is idempotent: normalizing its own output is a fixed point.
func Normalize(input string) (string, error) {
	if m := isoPattern.FindStringSubmatch(input); m != nil {
		if t, err := time.Parse("2006-01-02T15:04:05", m[1]); err == nil {
			return t.Format("15:04:05"), nil
		}
	}

	if m := amPmPattern.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second := 0
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		switch strings.ToUpper(m[4]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
		return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
	}

	if m := hhmmPattern.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
	}

	if m := hhmmssPattern.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format("15:04:05"), nil
		}
	}

	return input, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, input)
}

// FormatForSpeech renders an HH:MM:SS string the way a person would say it
// over the phone: "14:00:00" becomes "2:00 PM". Unparseable input is
// returned unchanged.
func FormatForSpeech(hhmmss string) string {
	t, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		return hhmmss
	}

	hour := t.Hour()
	minute := t.Minute()

	period := "AM"
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		displayHour = hour - 12
		period = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}
