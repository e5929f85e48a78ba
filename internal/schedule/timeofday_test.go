package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"12:00", 720},
		{"13:15", 795},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTimeOfDayRejectsLooseInput(t *testing.T) {
	bad := []string{
		"", "9:00", "09:0", "24:00", "12:60", "12-00",
		"12:00:00", "ab:cd", " 12:00", "12:00 ", "1200",
	}
	for _, in := range bad {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrBadTimeOfDay, "%q", in)
	}
}

func TestClock12(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"11:45", "11:45 AM"},
		{"12:00", "12:00 PM"},
		{"13:15", "01:15 PM"},
		{"19:00", "07:00 PM"},
		{"23:59", "11:59 PM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MustTimeOfDay(tc.in).Clock12())
	}
}

func TestStringRoundTrips(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "12:00", "20:16", "23:59"} {
		assert.Equal(t, s, MustTimeOfDay(s).String())
	}
}

func TestAddTruncatesToMinutes(t *testing.T) {
	base := MustTimeOfDay("12:00")
	assert.Equal(t, MustTimeOfDay("13:29"), base.Add(89*time.Minute))
	assert.Equal(t, base, base.Add(30*time.Second))
}

func TestAtAnchorsOnDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)

	at := MustTimeOfDay("19:15").At(date)
	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.March, at.Month())
	assert.Equal(t, 2, at.Day())
	assert.Equal(t, 19, at.Hour())
	assert.Equal(t, 15, at.Minute())
	assert.Equal(t, loc, at.Location())
}

func TestTimeOfDayFromClockDropsSeconds(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 40, 59, 0, time.UTC)
	assert.Equal(t, MustTimeOfDay("12:40"), TimeOfDayFromClock(now))
}
