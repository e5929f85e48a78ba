package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func times(ss ...string) []TimeOfDay {
	out := make([]TimeOfDay, 0, len(ss))
	for _, s := range ss {
		out = append(out, MustTimeOfDay(s))
	}
	return out
}

func TestSlotsFutureDate(t *testing.T) {
	ranges := []TimeRange{
		{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:16")},
		{Start: MustTimeOfDay("19:00"), End: MustTimeOfDay("20:16")},
	}
	got := Slots(ranges, false, time.Time{})
	want := times(
		"12:00", "12:15", "12:30", "12:45", "13:00", "13:15",
		"19:00", "19:15", "19:30", "19:45", "20:00", "20:15",
	)
	assert.Equal(t, want, got)
}

func TestSlotsTodayClipsNearTerm(t *testing.T) {
	ranges := []TimeRange{
		{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:16")},
		{Start: MustTimeOfDay("19:00"), End: MustTimeOfDay("20:16")},
	}
	// 12:40 -> cutoff 13:00; the first range loses everything before it.
	now := time.Date(2026, time.March, 2, 12, 40, 0, 0, time.UTC)
	got := Slots(ranges, true, now)
	want := times("13:00", "13:15", "19:00", "19:15", "19:30", "19:45", "20:00", "20:15")
	assert.Equal(t, want, got)
}

func TestSlotsTodayPastRangeContributesNothing(t *testing.T) {
	ranges := []TimeRange{
		{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:16")},
	}
	now := time.Date(2026, time.March, 2, 21, 0, 0, 0, time.UTC)
	assert.Empty(t, Slots(ranges, true, now))
}

func TestSlotsCutoffOffGrid(t *testing.T) {
	ranges := []TimeRange{
		{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:16")},
	}
	// 12:01 -> cutoff 12:30, which is on the grid; stepping stays aligned.
	now := time.Date(2026, time.March, 2, 12, 1, 0, 0, time.UTC)
	got := Slots(ranges, true, now)
	assert.Equal(t, times("12:30", "12:45", "13:00", "13:15"), got)
}

func TestRoundUpNow(t *testing.T) {
	cases := []struct {
		clock string
		want  string
	}{
		{"12:00", "12:30"},
		{"12:01", "12:30"},
		{"12:14", "12:30"},
		{"12:15", "12:45"},
		{"12:16", "12:45"},
		{"12:29", "12:45"},
		{"12:30", "13:00"},
		{"12:44", "13:00"},
		{"12:45", "13:15"},
	}
	for _, tc := range cases {
		tod := MustTimeOfDay(tc.clock)
		now := time.Date(2026, time.March, 2, tod.Hour(), tod.Minute(), 17, 0, time.UTC)
		assert.Equal(t, MustTimeOfDay(tc.want), RoundUpNow(now), "now=%s", tc.clock)
	}
}
