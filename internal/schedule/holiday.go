package schedule

import (
	"time"

	"github.com/rickar/cal/v2"
)

// HolidayCalendar answers whether a date is a public holiday in the
// deployment locale. It is injected into the rule lookup so tests can use a
// fixed calendar. Implementations must be pure lookups with no side effects.
type HolidayCalendar interface {
	// IsHoliday reports whether the date itself is a public holiday.
	IsHoliday(date time.Time) bool
	// IsHolidayEve reports whether the day after the date is a public
	// holiday. Used to detect Sundays that precede a holiday.
	IsHolidayEve(date time.Time) bool
}

// colombiaCalendar implements HolidayCalendar for Colombia's public
// holidays. Ley Emiliani moves a number of holidays to the following Monday;
// those are modelled with observance rules so IsHoliday answers for the
// observed date, matching how venues actually close.
type colombiaCalendar struct {
	calendar *cal.BusinessCalendar
}

// NewColombiaCalendar builds the holiday calendar for the reference
// deployment.
func NewColombiaCalendar() HolidayCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = "Colombia"
	c.AddHoliday(colombiaHolidays()...)
	return &colombiaCalendar{calendar: c}
}

func (c *colombiaCalendar) IsHoliday(date time.Time) bool {
	_, observed, _ := c.calendar.IsHoliday(date)
	return observed
}

func (c *colombiaCalendar) IsHolidayEve(date time.Time) bool {
	return c.IsHoliday(date.AddDate(0, 0, 1))
}

// nextMonday shifts a holiday that falls on any day other than Monday to the
// following Monday (Ley 51 de 1983).
var nextMonday = []cal.AltDay{
	{Day: time.Sunday, Offset: 1},
	{Day: time.Tuesday, Offset: 6},
	{Day: time.Wednesday, Offset: 5},
	{Day: time.Thursday, Offset: 4},
	{Day: time.Friday, Offset: 3},
	{Day: time.Saturday, Offset: 2},
}

func fixed(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
}

func emiliani(name string, month time.Month, day int) *cal.Holiday {
	h := fixed(name, month, day)
	h.Observed = nextMonday
	return h
}

func easterOffset(name string, offset int) *cal.Holiday {
	return &cal.Holiday{
		Name:   name,
		Type:   cal.ObservancePublic,
		Offset: offset,
		Func:   cal.CalcEasterOffset,
	}
}

func colombiaHolidays() []*cal.Holiday {
	return []*cal.Holiday{
		fixed("Año Nuevo", time.January, 1),
		emiliani("Día de los Reyes Magos", time.January, 6),
		emiliani("Día de San José", time.March, 19),
		easterOffset("Jueves Santo", -3),
		easterOffset("Viernes Santo", -2),
		fixed("Día del Trabajo", time.May, 1),
		// Ascensión, Corpus Christi and Sagrado Corazón are Emiliani
		// holidays too; since Easter is always a Sunday their Monday
		// observance collapses to fixed offsets from Easter.
		easterOffset("Ascensión del Señor", 43),
		easterOffset("Corpus Christi", 64),
		easterOffset("Sagrado Corazón de Jesús", 71),
		emiliani("San Pedro y San Pablo", time.June, 29),
		fixed("Día de la Independencia", time.July, 20),
		fixed("Batalla de Boyacá", time.August, 7),
		emiliani("Asunción de la Virgen", time.August, 15),
		emiliani("Día de la Raza", time.October, 12),
		emiliani("Día de Todos los Santos", time.November, 1),
		emiliani("Independencia de Cartagena", time.November, 11),
		fixed("Inmaculada Concepción", time.December, 8),
		fixed("Navidad", time.December, 25),
	}
}
