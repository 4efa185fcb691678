// Package lunar assembles the Chinese lunisolar calendar from solar terms and
// new moons.
//
// A lunar month runs from the civil day of one new moon to the day before the
// next, so it has 29 or 30 days. The month containing the December solstice
// is always the 11th. When 13 new moons fall between two consecutive
// solstices, the first month after the solstice month that contains no
// principal term ("zhongqi") is the leap month and repeats the number of the
// month before it.
package lunar

import (
	"fmt"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/jd"
	"github.com/zapponejosh/lunisolar/newmoon"
	"github.com/zapponejosh/lunisolar/solar"
	"github.com/zapponejosh/lunisolar/solarterm"
)

// Supported lunar year range.
const (
	MinYear = 1
	MaxYear = 9999
)

// Month is one month of a lunar year.
type Month struct {
	Year  int
	Month int // 1..12
	Leap  bool

	// IndexInYear is the zero-based position of the month in its year,
	// counting a leap month as its own position.
	IndexInYear int

	// NewMoon is the conjunction instant that opens the month.
	NewMoon jd.JulianDay

	// FirstJulianDay is the civil midnight starting the month's first day.
	FirstJulianDay jd.JulianDay

	DayCount int
}

// MonthWithLeap returns the month number, negated for a leap month.
func (m Month) MonthWithLeap() int {
	if m.Leap {
		return -m.Month
	}
	return m.Month
}

// FirstDay returns the solar date of the month's first day.
func (m Month) FirstDay() (solar.Day, error) {
	return solar.DayFromJulianDay(m.FirstJulianDay)
}

// Contains reports whether the civil day with day number n falls in the month.
func (m Month) Contains(n int) bool {
	first := m.FirstJulianDay.DayNumber()
	return n >= first && n < first+m.DayCount
}

func (m Month) String() string {
	if m.Leap {
		return fmt.Sprintf("%04d-L%02d", m.Year, m.Month)
	}
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Year is an assembled lunar year.
type Year struct {
	Year   int
	Months []Month

	// LeapMonth is the number of the leap month, or 0.
	LeapMonth int

	boundaries []jd.JulianDay
}

// MonthCount returns 12, or 13 in a leap year.
func (y Year) MonthCount() int { return len(y.Months) }

// DayCount returns the number of days in the year.
func (y Year) DayCount() int {
	n := 0
	for _, m := range y.Months {
		n += m.DayCount
	}
	return n
}

// Day is a date in the lunar calendar.
type Day struct {
	Year  int
	Month int
	Leap  bool
	Day   int
}

func (d Day) String() string {
	if d.Leap {
		return fmt.Sprintf("%04d-L%02d-%02d", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Hour is one of the two-hour periods of a lunar day. Index 0 is the early
// zi hour (00:00-00:59) and index 12 the late zi hour (23:00-23:59), both
// belonging to the same civil day.
type Hour struct {
	Day   Day
	Index int
}

// HourIndex returns the two-hour period index, 0..12, of a clock hour.
func HourIndex(hour int) int {
	return (hour + 1) / 2
}

// Calendar assembles lunar years. It holds no mutable state and is safe for
// concurrent use when its locators are.
type Calendar struct {
	terms *solarterm.Locator
	moons *newmoon.Locator
}

// New returns a Calendar built on the given locators.
func New(terms *solarterm.Locator, moons *newmoon.Locator) *Calendar {
	return &Calendar{terms: terms, moons: moons}
}

func validateYear(op string, year int) error {
	if year < MinYear || year > MaxYear {
		return calerr.Invalid(op, "lunar year %d", year)
	}
	return nil
}

// Year assembles lunar year year.
//
// Examples:
//   - Year(2023): 13 months with a leap 2nd month, starting 2023-01-22
//   - Year(2024): 12 months starting 2024-02-10
func (c *Calendar) Year(year int) (Year, error) {
	if err := validateYear("lunar.Year", year); err != nil {
		return Year{}, err
	}
	return c.newAssembly().year(year)
}

// NewMoonBoundaries returns the new moons bounding the months of a lunar
// year: one more entry than the year has months.
func (c *Calendar) NewMoonBoundaries(year int) ([]jd.JulianDay, error) {
	y, err := c.Year(year)
	if err != nil {
		return nil, err
	}
	out := make([]jd.JulianDay, len(y.boundaries))
	copy(out, y.boundaries)
	return out, nil
}

// Month returns one month of a lunar year. A leap month exists only in the
// year whose leap month has that number.
func (c *Calendar) Month(year, month int, leap bool) (Month, error) {
	const op = "lunar.Month"
	if err := validateYear(op, year); err != nil {
		return Month{}, err
	}
	if month < 1 || month > 12 {
		return Month{}, calerr.Invalid(op, "month %d", month)
	}
	y, err := c.newAssembly().year(year)
	if err != nil {
		return Month{}, err
	}
	for _, m := range y.Months {
		if m.Month == month && m.Leap == leap {
			return m, nil
		}
	}
	if leap {
		return Month{}, calerr.Invalid(op, "leap month %d in lunar year %d", month, year)
	}
	return Month{}, calerr.Invalid(op, "month %d in lunar year %d", month, year)
}

// MonthNext steps n months from m, counting leap months, across years.
func (c *Calendar) MonthNext(m Month, n int) (Month, error) {
	a := c.newAssembly()
	y, err := a.year(m.Year)
	if err != nil {
		return Month{}, err
	}
	i := m.IndexInYear + n
	for i >= len(y.Months) {
		i -= len(y.Months)
		if err := validateYear("lunar.MonthNext", y.Year+1); err != nil {
			return Month{}, err
		}
		if y, err = a.year(y.Year + 1); err != nil {
			return Month{}, err
		}
	}
	for i < 0 {
		if err := validateYear("lunar.MonthNext", y.Year-1); err != nil {
			return Month{}, err
		}
		if y, err = a.year(y.Year - 1); err != nil {
			return Month{}, err
		}
		i += len(y.Months)
	}
	return y.Months[i], nil
}

// NewDay validates and returns a lunar date.
func (c *Calendar) NewDay(year, month int, leap bool, day int) (Day, error) {
	m, err := c.Month(year, month, leap)
	if err != nil {
		return Day{}, err
	}
	if day < 1 || day > m.DayCount {
		return Day{}, calerr.Invalid("lunar.NewDay", "day %d of %s", day, m)
	}
	return Day{Year: year, Month: month, Leap: leap, Day: day}, nil
}

// DayFromSolar converts a solar date to the lunar calendar.
func (c *Calendar) DayFromSolar(d solar.Day) (Day, error) {
	const op = "lunar.DayFromSolar"
	a := c.newAssembly()
	n := d.DayNumber()

	// The 1st month falls in January or February except in the years that
	// open one month early, which may start in December.
	year := d.Year()
	if d.Month() == 12 && year < MaxYear {
		next, err := a.firstDayNumber(year + 1)
		if err != nil {
			return Day{}, err
		}
		if n >= next {
			year++
		}
	}
	if year == d.Year() {
		first, err := a.firstDayNumber(year)
		if err != nil {
			return Day{}, err
		}
		if n < first {
			year--
		}
	}
	if err := validateYear(op, year); err != nil {
		return Day{}, err
	}

	y, err := a.year(year)
	if err != nil {
		return Day{}, err
	}
	for _, m := range y.Months {
		if m.Contains(n) {
			return Day{
				Year:  year,
				Month: m.Month,
				Leap:  m.Leap,
				Day:   n - m.FirstJulianDay.DayNumber() + 1,
			}, nil
		}
	}
	return Day{}, calerr.Invalid(op, "%s outside lunar year %d", d, year)
}

// firstDayNumber returns the civil day number of a lunar year's first day.
func (a *assembly) firstDayNumber(year int) (int, error) {
	k, err := a.start(year)
	if err != nil {
		return 0, err
	}
	nm, err := a.c.moons.Lunation(k)
	if err != nil {
		return 0, err
	}
	return nm.DayNumber(), nil
}

// SolarDay converts a lunar date to the solar calendar.
func (c *Calendar) SolarDay(d Day) (solar.Day, error) {
	m, err := c.Month(d.Year, d.Month, d.Leap)
	if err != nil {
		return solar.Day{}, err
	}
	if d.Day < 1 || d.Day > m.DayCount {
		return solar.Day{}, calerr.Invalid("lunar.SolarDay", "day %d of %s", d.Day, m)
	}
	return solar.DayFromDayNumber(m.FirstJulianDay.DayNumber() + d.Day - 1)
}

// HourFromSolar returns the lunar day and two-hour period of a solar time.
func (c *Calendar) HourFromSolar(t solar.Time) (Hour, error) {
	d, err := c.DayFromSolar(t.Date())
	if err != nil {
		return Hour{}, err
	}
	return Hour{Day: d, Index: HourIndex(t.Hour())}, nil
}
