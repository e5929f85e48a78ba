package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/availability"
)

// HoursHandler serves the available-hours lookup that powers the public
// booking form.
type HoursHandler struct {
	Engine *availability.Engine
}

// NewHoursHandler constructs a HoursHandler and panics on a nil engine.
func NewHoursHandler(engine *availability.Engine) *HoursHandler {
	if engine == nil {
		panic("nil engine passed to NewHoursHandler")
	}
	return &HoursHandler{Engine: engine}
}

// Available returns the bookable start times for a venue, date and party
// size. The same times are rendered twice: "hours" holds 24-hour HH:MM
// values, which is what the booking form submits back, and "display" holds
// the matching 12-hour strings shown to the guest. A closed day is a 200
// with empty lists, not an error.
func (h *HoursHandler) Available(c echo.Context) error {
	venueID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	date := c.QueryParam("date")
	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a positive integer"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Engine.AvailableSlots(ctx, venueID, date, partySize)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, availability.ErrUnknownVenue):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability lookup failed"})
		}
	}

	hours := make([]string, 0, len(slots))
	display := make([]string, 0, len(slots))
	for _, s := range slots {
		hours = append(hours, s.String())
		display = append(display, s.Clock12())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id":   venueID,
		"date":       date,
		"party_size": partySize,
		"hours":      hours,
		"display":    display,
	})
}
