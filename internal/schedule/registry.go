package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownVenue is returned when a venue ID has no schedule configured.
// Handlers should translate this into an HTTP 404 response.
var ErrUnknownVenue = errors.New("venue is not configured")

// ErrBadSchedule is returned by NewRegistry when a venue's schedule
// definition is internally inconsistent.
var ErrBadSchedule = errors.New("invalid schedule definition")

// TimeRange is a half-open operating window [Start, End).
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// DayClass names the rule set applied to a calendar date.
type DayClass string

const (
	ClassWeekday       DayClass = "weekday"         // Monday through Thursday
	ClassFridaySat     DayClass = "friday_saturday" // Friday and Saturday
	ClassSunday        DayClass = "sunday"          // plain Sunday
	ClassHoliday       DayClass = "holiday"         // public holiday, any weekday
	ClassHolidaySunday DayClass = "holiday_sunday"  // Sunday on the eve of a holiday
)

// VenueSchedule is a tagged schedule variant for one venue. When Single is
// non-nil the venue keeps the same hours every day and ByClass is ignored.
// Otherwise ByClass must carry a rule set for every DayClass.
type VenueSchedule struct {
	Single  []TimeRange
	ByClass map[DayClass][]TimeRange
}

// Registry maps venue IDs to validated schedules and classifies dates
// against the injected holiday calendar. It is built once at startup and
// read-only afterwards.
type Registry struct {
	venues   map[uint64]VenueSchedule
	calendar HolidayCalendar
}

// NewRegistry validates every schedule definition and returns a Registry.
// Validation rejects empty variants, ranges with End <= Start, ranges out of
// chronological order and day-classified schedules missing a class.
func NewRegistry(venues map[uint64]VenueSchedule, calendar HolidayCalendar) (*Registry, error) {
	if calendar == nil {
		return nil, fmt.Errorf("%w: nil holiday calendar", ErrBadSchedule)
	}
	for id, vs := range venues {
		if vs.Single != nil {
			if err := validateRanges(vs.Single); err != nil {
				return nil, fmt.Errorf("%w: venue %d: %v", ErrBadSchedule, id, err)
			}
			continue
		}
		if len(vs.ByClass) == 0 {
			return nil, fmt.Errorf("%w: venue %d has neither single nor day-classified hours", ErrBadSchedule, id)
		}
		for _, class := range []DayClass{ClassWeekday, ClassFridaySat, ClassSunday, ClassHoliday, ClassHolidaySunday} {
			ranges, ok := vs.ByClass[class]
			if !ok {
				return nil, fmt.Errorf("%w: venue %d missing %q hours", ErrBadSchedule, id, class)
			}
			if err := validateRanges(ranges); err != nil {
				return nil, fmt.Errorf("%w: venue %d class %q: %v", ErrBadSchedule, id, class, err)
			}
		}
	}
	return &Registry{venues: venues, calendar: calendar}, nil
}

func validateRanges(ranges []TimeRange) error {
	if len(ranges) == 0 {
		return errors.New("empty rule set")
	}
	prevEnd := TimeOfDay(-1)
	for _, r := range ranges {
		if r.End <= r.Start {
			return fmt.Errorf("range %s-%s: end must exceed start", r.Start, r.End)
		}
		if r.Start < prevEnd {
			return fmt.Errorf("range starting %s overlaps or precedes the previous range", r.Start)
		}
		prevEnd = r.End
	}
	return nil
}

// Has reports whether the venue has a configured schedule.
func (r *Registry) Has(venueID uint64) bool {
	_, ok := r.venues[venueID]
	return ok
}

// RulesFor returns the operating windows applicable to a venue on a date.
// December 25 and January 1 close every venue regardless of configuration
// and yield an empty rule set, which is not an error.
//
// For day-classified venues the precedence is: holiday, then a Sunday that
// is the eve of a holiday, then Monday-Thursday, then Friday/Saturday, then
// plain Sunday. A holiday's hours win over whichever weekday it falls on.
func (r *Registry) RulesFor(venueID uint64, date time.Time) ([]TimeRange, error) {
	vs, ok := r.venues[venueID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownVenue, venueID)
	}
	if (date.Month() == time.December && date.Day() == 25) ||
		(date.Month() == time.January && date.Day() == 1) {
		return nil, nil
	}
	if vs.Single != nil {
		return vs.Single, nil
	}
	return vs.ByClass[r.Classify(date)], nil
}

// Classify maps a date to the DayClass whose hours apply.
func (r *Registry) Classify(date time.Time) DayClass {
	switch {
	case r.calendar.IsHoliday(date):
		return ClassHoliday
	case date.Weekday() == time.Sunday && r.calendar.IsHolidayEve(date):
		return ClassHolidaySunday
	case date.Weekday() >= time.Monday && date.Weekday() <= time.Thursday:
		return ClassWeekday
	case date.Weekday() == time.Friday || date.Weekday() == time.Saturday:
		return ClassFridaySat
	default:
		return ClassSunday
	}
}

// DefaultVenueSchedules mirrors the reference deployment: venue 1 keeps a
// single all-week window, venue 2 varies by day classification.
func DefaultVenueSchedules() map[uint64]VenueSchedule {
	return map[uint64]VenueSchedule{
		1: {
			Single: []TimeRange{
				{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("20:16")},
			},
		},
		2: {
			ByClass: map[DayClass][]TimeRange{
				ClassWeekday: {
					{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:16")},
					{Start: MustTimeOfDay("19:00"), End: MustTimeOfDay("20:16")},
				},
				ClassFridaySat: {
					{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("13:46")},
					{Start: MustTimeOfDay("19:00"), End: MustTimeOfDay("20:16")},
				},
				ClassSunday: {
					{Start: MustTimeOfDay("11:00"), End: MustTimeOfDay("15:46")},
				},
				ClassHoliday: {
					{Start: MustTimeOfDay("11:00"), End: MustTimeOfDay("15:46")},
				},
				ClassHolidaySunday: {
					{Start: MustTimeOfDay("12:00"), End: MustTimeOfDay("15:31")},
					{Start: MustTimeOfDay("19:00"), End: MustTimeOfDay("20:16")},
				},
			},
		},
	}
}
