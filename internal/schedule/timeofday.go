// Package schedule holds the static operating-hour configuration for venues
// and the calendar logic used to pick the applicable rule set for a date.
// Times of day are carried as typed minute-of-day values; strings only
// appear at the API boundary.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a time of day at minute resolution, stored as minutes since
// midnight. The zero value is midnight.
type TimeOfDay int

// ErrBadTimeOfDay is returned when a string cannot be parsed as a strict
// 24-hour HH:MM value.
var ErrBadTimeOfDay = errors.New("time of day must be HH:MM in 24-hour format")

// ParseTimeOfDay parses a strict 24-hour "HH:MM" string. Both fields must be
// two digits; hours run 00-23 and minutes 00-59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeOfDay, s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeOfDay, s)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustTimeOfDay is ParseTimeOfDay for compile-time constants; it panics on
// malformed input and is intended for static schedule tables only.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Add returns t advanced by the given duration, truncated to the minute.
// The result is not wrapped; callers comparing against range ends rely on
// values past 24h ordering correctly.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// String renders the 24-hour "HH:MM" form used internally and in storage.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Clock12 renders the 12-hour display form with a fixed AM/PM suffix,
// e.g. "12:00 PM". This is the only formatting clients see.
func (t TimeOfDay) Clock12() string {
	h := t.Hour()
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute(), suffix)
}

// At anchors the time of day onto a calendar date in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// TimeOfDayFromClock extracts the time of day from a full timestamp,
// truncating seconds.
func TimeOfDayFromClock(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}
