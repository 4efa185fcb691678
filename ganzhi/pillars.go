package ganzhi

import (
	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/solar"
	"github.com/zapponejosh/lunisolar/solarterm"
)

// Kind selects one of the four pillars.
type Kind int

const (
	YearPillar Kind = iota
	MonthPillar
	DayPillar
	HourPillar
)

func (k Kind) String() string {
	switch k {
	case YearPillar:
		return "year"
	case MonthPillar:
		return "month"
	case DayPillar:
		return "day"
	case HourPillar:
		return "hour"
	default:
		return "unknown"
	}
}

// Pillars are the four sexagenary pillars of a moment.
type Pillars struct {
	Year  Cycle
	Month Cycle
	Day   Cycle
	Hour  Cycle
}

// ThreePillars are the year, month and day pillars of a civil day.
type ThreePillars struct {
	Year  Cycle
	Month Cycle
	Day   Cycle
}

// dayOffset aligns day numbers so that 2000-01-07 is jiazi.
const dayOffset = 11

// DayCycle returns the day pillar of the civil day with the given day number.
func DayCycle(dayNumber int) Cycle {
	return Cycle(mod(dayNumber-dayOffset, CycleLength))
}

// HourCycle returns the pillar of the two-hour period starting at clock hour
// hour on the civil day dayNumber. The period from 23:00 takes its stem from
// the following day.
func HourCycle(dayNumber, hour int) Cycle {
	branch := Branch(mod((hour+1)/2, 12))
	if hour >= 23 {
		dayNumber++
	}
	stem := Stem(mod(int(DayCycle(dayNumber).Stem())%5*2+int(branch), 10))
	return fromStemBranch(stem, branch)
}

// monthCount numbers the sexagenary months continuously: 12*Y is the yin
// month (the 1st) of sexagenary year Y. The month in effect after term t
// follows from the latest sectional term at or before it.
func monthCount(t solarterm.Term) int {
	var offset int
	switch {
	case t.Index == 0:
		offset = -2
	case t.Index < solarterm.StartOfSpring:
		offset = -1
	default:
		offset = (t.Index - solarterm.StartOfSpring) / 2
	}
	return 12*t.Year + offset
}

// YearCycle returns the pillar of sexagenary year y, which is also the
// cycle name of lunar year y. 4 CE was jiazi.
func YearCycle(y int) Cycle { return Cycle(mod(y-4, CycleLength)) }

// monthCycle returns the pillar of continuous month m. The yin month of a
// jia year is bingyin.
func monthCycle(m int) Cycle { return Cycle(mod(m+14, CycleLength)) }

// Calculator derives pillars from solar terms.
type Calculator struct {
	terms *solarterm.Locator
}

// New returns a Calculator using terms.
func New(terms *solarterm.Locator) *Calculator {
	return &Calculator{terms: terms}
}

// Pillars returns the four pillars of a moment. The year pillar changes at
// the Start of Spring instant and the month pillar at each sectional term
// instant; the day pillar changes at midnight.
//
// Examples:
//   - 2024-02-04 16:00:00: year guimao, the Start of Spring falls at 16:26
//   - 2024-06-01 23:30:00: day bingshen, hour gengzi (stem from 2024-06-02)
func (c *Calculator) Pillars(t solar.Time) (Pillars, error) {
	term, err := c.terms.Containing(t.JulianDay())
	if err != nil {
		return Pillars{}, err
	}
	m := monthCount(term)
	n := t.Date().DayNumber()
	return Pillars{
		Year:  YearCycle(floorDiv(m, 12)),
		Month: monthCycle(m),
		Day:   DayCycle(n),
		Hour:  HourCycle(n, t.Hour()),
	}, nil
}

// Pillar returns a single pillar of a moment.
func (c *Calculator) Pillar(kind Kind, t solar.Time) (Cycle, error) {
	switch kind {
	case DayPillar:
		return DayCycle(t.Date().DayNumber()), nil
	case HourPillar:
		return HourCycle(t.Date().DayNumber(), t.Hour()), nil
	case YearPillar, MonthPillar:
		p, err := c.Pillars(t)
		if err != nil {
			return 0, err
		}
		if kind == YearPillar {
			return p.Year, nil
		}
		return p.Month, nil
	default:
		return 0, calerr.Invalid("ganzhi.Pillar", "pillar kind %d", kind)
	}
}

// DayPillars returns the year, month and day pillars of a civil day. A term
// governs the whole day it falls on, so the Start of Spring day already
// belongs to the new year.
func (c *Calculator) DayPillars(d solar.Day) (ThreePillars, error) {
	term, _, err := c.terms.ContainingDay(d)
	if err != nil {
		return ThreePillars{}, err
	}
	m := monthCount(term)
	return ThreePillars{
		Year:  YearCycle(floorDiv(m, 12)),
		Month: monthCycle(m),
		Day:   DayCycle(d.DayNumber()),
	}, nil
}

// FindDays returns the civil days in sexagenary years startYear..endYear
// whose day-level pillars equal p, in ascending order.
func (c *Calculator) FindDays(p ThreePillars, startYear, endYear int) ([]solar.Day, error) {
	const op = "ganzhi.FindDays"
	if !p.Year.Valid() || !p.Month.Valid() || !p.Day.Valid() {
		return nil, calerr.Invalid(op, "pillars %d/%d/%d", p.Year, p.Month, p.Day)
	}
	if startYear < solar.MinYear || endYear > solar.MaxYear || startYear > endYear {
		return nil, calerr.Invalid(op, "year range %d..%d", startYear, endYear)
	}

	var days []solar.Day
	// Sexagenary years with the wanted pillar recur every 60 years.
	first := startYear + mod(int(p.Year)-int(YearCycle(startYear)), CycleLength)
	for y := first; y <= endYear; y += CycleLength {
		// Month o of year y (0 = yin) has pillar monthCycle(12*y+o).
		o := mod(int(p.Month)-int(monthCycle(12*y)), CycleLength)
		if o >= 12 {
			continue
		}
		fromYear, fromIndex := solarterm.Shift(y, solarterm.StartOfSpring, 2*o)
		toYear, toIndex := solarterm.Shift(fromYear, fromIndex, 2)
		from, err := c.terms.Instant(fromYear, fromIndex)
		if err != nil {
			return nil, err
		}
		to, err := c.terms.Instant(toYear, toIndex)
		if err != nil {
			return nil, err
		}

		start, end := from.DayNumber(), to.DayNumber()
		n := start + mod(int(p.Day)-int(DayCycle(start)), CycleLength)
		for ; n < end; n += CycleLength {
			d, err := solar.DayFromDayNumber(n)
			if err != nil {
				// Past the end of the supported range.
				break
			}
			days = append(days, d)
		}
	}
	return days, nil
}
