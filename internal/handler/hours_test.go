package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/schedule"
)

type stubOccupancy struct{ sum int }

func (s stubOccupancy) SumPartySizes(context.Context, uint64, time.Time, time.Time) (int, error) {
	return s.sum, nil
}

type openCalendar struct{}

func (openCalendar) IsHoliday(time.Time) bool    { return false }
func (openCalendar) IsHolidayEve(time.Time) bool { return false }

func newHoursHandler(t *testing.T, sum int) *HoursHandler {
	t.Helper()
	reg, err := schedule.NewRegistry(schedule.DefaultVenueSchedules(), openCalendar{})
	require.NoError(t, err)
	now := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	engine := availability.NewEngine(reg, stubOccupancy{sum: sum}, func() time.Time { return now })
	return NewHoursHandler(engine)
}

func hoursRequest(h *HoursHandler, venueID, date, partySize string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues/"+venueID+"/hours?date="+date+"&party_size="+partySize, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/venues/:id/hours")
	c.SetParamNames("id")
	c.SetParamValues(venueID)
	_ = h.Available(c)
	return rec
}

func TestHoursAvailable(t *testing.T) {
	h := newHoursHandler(t, 0)

	rec := hoursRequest(h, "2", "2026-03-02", "4")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		VenueID   uint64   `json:"venue_id"`
		Date      string   `json:"date"`
		PartySize int      `json:"party_size"`
		Hours     []string `json:"hours"`
		Display   []string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(2), body.VenueID)
	assert.Equal(t, "2026-03-02", body.Date)
	assert.Equal(t, 4, body.PartySize)
	require.Len(t, body.Hours, 12)
	assert.Equal(t, "12:00", body.Hours[0])
	assert.Equal(t, "12:00 PM", body.Display[0])
	assert.Equal(t, "20:15", body.Hours[11])
	assert.Equal(t, "08:15 PM", body.Display[11])
}

func TestHoursFullyBooked(t *testing.T) {
	h := newHoursHandler(t, availability.CapacityLimit)

	rec := hoursRequest(h, "2", "2026-03-02", "1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hours []string `json:"hours"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Hours)
}

func TestHoursBadInput(t *testing.T) {
	h := newHoursHandler(t, 0)

	assert.Equal(t, http.StatusBadRequest, hoursRequest(h, "2", "03/02/2026", "4").Code)
	assert.Equal(t, http.StatusBadRequest, hoursRequest(h, "2", "2026-03-02", "zero").Code)
	assert.Equal(t, http.StatusBadRequest, hoursRequest(h, "2", "2026-03-02", "0").Code)
	assert.Equal(t, http.StatusBadRequest, hoursRequest(h, "abc", "2026-03-02", "4").Code)
}

func TestHoursUnknownVenue(t *testing.T) {
	h := newHoursHandler(t, 0)
	assert.Equal(t, http.StatusNotFound, hoursRequest(h, "99", "2026-03-02", "4").Code)
}
