// Package availability computes bookable time slots for a venue, date and
// party size. It composes the schedule registry, the holiday calendar and an
// occupancy read against the booking store; it performs no writes itself.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/limoncello/reservation-api/internal/schedule"
)

// CapacityLimit is the system-wide occupancy cap inside one window. It is
// deliberately not per-venue.
const CapacityLimit = 30

// WindowHalf is the half-width of the occupancy window around a candidate
// slot, approximating table-turnover time. Changing it by a minute changes
// which party sizes become rejectable, so it is fixed here.
const WindowHalf = 89 * time.Minute

// DateLayout is the only accepted wire format for booking dates.
const DateLayout = "2006-01-02"

// ErrInvalidInput marks caller-correctable input problems: malformed dates,
// non-positive party sizes. Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownVenue mirrors schedule.ErrUnknownVenue so callers need only
// depend on this package. Handlers map it to a 404 response.
var ErrUnknownVenue = schedule.ErrUnknownVenue

// OccupancyReader sums the party sizes of active bookings for a venue whose
// booking timestamp falls inside [from, to]. The booking repository
// implements it; tests substitute an in-memory fake.
type OccupancyReader interface {
	SumPartySizes(ctx context.Context, venueID uint64, from, to time.Time) (int, error)
}

// Engine turns (venue, date, party size) into the ordered list of bookable
// slots. It is stateless and safe for concurrent use; every call reads the
// current booking state, so results change only when bookings do.
type Engine struct {
	registry  *schedule.Registry
	occupancy OccupancyReader
	now       func() time.Time
}

// NewEngine builds an Engine. The now func supplies the current time in the
// venue's timezone; pass nil to use time.Now.
func NewEngine(registry *schedule.Registry, occupancy OccupancyReader, now func() time.Time) *Engine {
	if registry == nil || occupancy == nil {
		panic("nil dependency passed to NewEngine")
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{registry: registry, occupancy: occupancy, now: now}
}

// ParseDate parses a strict YYYY-MM-DD date in the given location. Anything
// looser than the exact layout (short fields, trailing text, time suffixes)
// is rejected with ErrInvalidInput.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, s)
	}
	return t, nil
}

// AvailableSlots returns the bookable start times for the venue on the date,
// in chronological order, keeping only slots whose occupancy window still
// admits partySize more guests. A closed day yields an empty, non-error
// result. Errors are ErrInvalidInput, ErrUnknownVenue, or the occupancy
// read's own failure propagated unchanged.
func (e *Engine) AvailableSlots(ctx context.Context, venueID uint64, dateStr string, partySize int) ([]schedule.TimeOfDay, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be a positive integer", ErrInvalidInput)
	}
	now := e.now()
	date, err := ParseDate(dateStr, now.Location())
	if err != nil {
		return nil, err
	}
	ranges, err := e.registry.RulesFor(venueID, date)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return []schedule.TimeOfDay{}, nil
	}
	today := now.Format(DateLayout) == dateStr
	candidates := schedule.Slots(ranges, today, now)
	kept := make([]schedule.TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		ok, err := e.Admit(ctx, venueID, slot.At(date), partySize)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, slot)
		}
	}
	return kept, nil
}

// Admit reports whether a booking of partySize at the exact timestamp would
// keep total occupancy within CapacityLimit. Booking creation must call this
// under the corresponding slot lock before inserting.
func (e *Engine) Admit(ctx context.Context, venueID uint64, at time.Time, partySize int) (bool, error) {
	if partySize <= 0 {
		return false, fmt.Errorf("%w: party size must be a positive integer", ErrInvalidInput)
	}
	sum, err := e.occupancy.SumPartySizes(ctx, venueID, at.Add(-WindowHalf), at.Add(WindowHalf))
	if err != nil {
		return false, err
	}
	return sum+partySize <= CapacityLimit, nil
}

// Registry exposes the schedule registry for handlers that need existence
// checks without a full slot computation.
func (e *Engine) Registry() *schedule.Registry { return e.registry }

// Now returns the engine's current time in the venue timezone.
func (e *Engine) Now() time.Time { return e.now() }
