package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limoncello/reservation-api/internal/schedule"
)

// fakeOccupancy returns a fixed sum and records every window it was asked
// about.
type fakeOccupancy struct {
	sum     int
	err     error
	windows [][2]time.Time
}

func (f *fakeOccupancy) SumPartySizes(_ context.Context, _ uint64, from, to time.Time) (int, error) {
	f.windows = append(f.windows, [2]time.Time{from, to})
	return f.sum, f.err
}

type fixedCalendar map[string]bool

func (f fixedCalendar) IsHoliday(date time.Time) bool { return f[date.Format(DateLayout)] }
func (f fixedCalendar) IsHolidayEve(date time.Time) bool {
	return f.IsHoliday(date.AddDate(0, 0, 1))
}

func newTestEngine(t *testing.T, occ OccupancyReader, now time.Time, holidays fixedCalendar) *Engine {
	t.Helper()
	if holidays == nil {
		holidays = fixedCalendar{}
	}
	reg, err := schedule.NewRegistry(schedule.DefaultVenueSchedules(), holidays)
	require.NoError(t, err)
	return NewEngine(reg, occ, func() time.Time { return now })
}

func slotStrings(slots []schedule.TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

// now well before the queried date so the same-day cutoff stays out of the way
var baseNow = time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

func TestAvailableSlotsWeekday(t *testing.T) {
	e := newTestEngine(t, &fakeOccupancy{}, baseNow, nil)

	// 2026-03-02 is a Monday.
	slots, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"12:00", "12:15", "12:30", "12:45", "13:00", "13:15",
		"19:00", "19:15", "19:30", "19:45", "20:00", "20:15",
	}, slotStrings(slots))
}

func TestAvailableSlotsCapacity(t *testing.T) {
	occ := &fakeOccupancy{sum: 28}
	e := newTestEngine(t, occ, baseNow, nil)

	// 28 + 2 = 30 is still admitted everywhere.
	slots, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 2)
	require.NoError(t, err)
	assert.Len(t, slots, 12)

	// 28 + 3 exceeds the cap, so nothing is offered.
	slots, err = e.AvailableSlots(context.Background(), 2, "2026-03-02", 3)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsClosedDays(t *testing.T) {
	e := newTestEngine(t, &fakeOccupancy{}, baseNow, nil)

	for _, date := range []string{"2026-12-25", "2027-01-01"} {
		slots, err := e.AvailableSlots(context.Background(), 1, date, 2)
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots, date)
	}
}

func TestAvailableSlotsHolidayHours(t *testing.T) {
	cal := fixedCalendar{"2026-03-02": true}
	e := newTestEngine(t, &fakeOccupancy{}, baseNow, cal)

	slots, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 2)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "11:00", slots[0].String())
	assert.Equal(t, "15:45", slots[len(slots)-1].String())
}

func TestAvailableSlotsSameDayCutoff(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 40, 0, 0, time.UTC)
	e := newTestEngine(t, &fakeOccupancy{}, now, nil)

	slots, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"13:00", "13:15",
		"19:00", "19:15", "19:30", "19:45", "20:00", "20:15",
	}, slotStrings(slots))
}

func TestAvailableSlotsInvalidInput(t *testing.T) {
	e := newTestEngine(t, &fakeOccupancy{}, baseNow, nil)

	for _, date := range []string{"2026-3-2", "02-03-2026", "2026-03-02T10:00", "2026-03-32", "tomorrow"} {
		_, err := e.AvailableSlots(context.Background(), 2, date, 2)
		assert.ErrorIs(t, err, ErrInvalidInput, date)
	}
	_, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.AvailableSlots(context.Background(), 2, "2026-03-02", -4)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableSlotsUnknownVenue(t *testing.T) {
	e := newTestEngine(t, &fakeOccupancy{}, baseNow, nil)

	_, err := e.AvailableSlots(context.Background(), 99, "2026-03-02", 2)
	assert.ErrorIs(t, err, ErrUnknownVenue)
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	occ := &fakeOccupancy{sum: 10}
	e := newTestEngine(t, occ, baseNow, nil)

	first, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 5)
	require.NoError(t, err)
	second, err := e.AvailableSlots(context.Background(), 2, "2026-03-02", 5)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same state must yield the same slots")
}

func TestAdmitWindowBounds(t *testing.T) {
	occ := &fakeOccupancy{}
	e := newTestEngine(t, occ, baseNow, nil)

	at := time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC)
	ok, err := e.Admit(context.Background(), 2, at, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, occ.windows, 1)
	assert.Equal(t, at.Add(-89*time.Minute), occ.windows[0][0])
	assert.Equal(t, at.Add(89*time.Minute), occ.windows[0][1])
}

func TestAdmitAtTheCap(t *testing.T) {
	at := time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC)

	occ := &fakeOccupancy{sum: 27}
	e := newTestEngine(t, occ, baseNow, nil)
	ok, err := e.Admit(context.Background(), 2, at, 3)
	require.NoError(t, err)
	assert.True(t, ok, "27+3 fills the cap exactly")

	occ.sum = 28
	ok, err = e.Admit(context.Background(), 2, at, 3)
	require.NoError(t, err)
	assert.False(t, ok, "28+3 exceeds the cap")
}

func TestParseDateStrict(t *testing.T) {
	loc := time.UTC
	got, err := ParseDate("2026-03-02", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, loc), got)

	for _, s := range []string{"2026-3-02", "2026-03-2", "2026/03/02", "2026-02-30", ""} {
		_, err := ParseDate(s, loc)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}
