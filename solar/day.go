package solar

import (
	"fmt"
	"math"
	"time"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/jd"
)

// Day is a validated calendar date.
type Day struct {
	year, month, day int
}

// NewDay validates and returns the date. Dates in the 1582 reform gap fail.
func NewDay(year, month, day int) (Day, error) {
	if err := validateDay("solar.NewDay", year, month, day); err != nil {
		return Day{}, err
	}
	return Day{year: year, month: month, day: day}, nil
}

// DayFromJulianDay returns the civil date containing j.
func DayFromJulianDay(j jd.JulianDay) (Day, error) {
	return DayFromDayNumber(j.DayNumber())
}

// DayFromDayNumber returns the date with the given civil day number.
func DayFromDayNumber(n int) (Day, error) {
	y, m, d := jd.FromDayNumber(n).Date()
	if err := validateYear("solar.DayFromDayNumber", y); err != nil {
		return Day{}, err
	}
	return Day{year: y, month: m, day: d}, nil
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	var y, m, d int
	var rest string
	if n, _ := fmt.Sscanf(s, "%d-%d-%d%s", &y, &m, &d, &rest); n != 3 {
		return Day{}, calerr.Invalid("solar.ParseDay", "%q", s)
	}
	return NewDay(y, m, d)
}

func (d Day) Year() int  { return d.year }
func (d Day) Month() int { return d.month }
func (d Day) Day() int   { return d.day }

// YearMonth returns the month containing the day.
func (d Day) YearMonth() Month { return Month{year: d.year, month: d.month} }

// JulianDay returns the Julian Day of the day's midnight.
func (d Day) JulianDay() jd.JulianDay {
	return jd.FromCalendar(d.year, d.month, d.day, 0, 0, 0)
}

// DayNumber returns the civil day count of the date.
func (d Day) DayNumber() int {
	return d.JulianDay().DayNumber()
}

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday {
	return d.JulianDay().Weekday()
}

// Next returns the date n days later. Crossing 1582-10-04 / 1582-10-15 counts
// as a single day.
func (d Day) Next(n int) (Day, error) {
	if n == 0 {
		return d, nil
	}
	return DayFromDayNumber(d.DayNumber() + n)
}

// Subtract returns the number of days from other to d.
func (d Day) Subtract(other Day) int {
	return d.DayNumber() - other.DayNumber()
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// After reports whether d is later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// IndexInYear returns the zero-based day of the year.
func (d Day) IndexInYear() int {
	return d.Subtract(Day{year: d.year, month: 1, day: 1})
}

// Week returns the week of the month containing d.
func (d Day) Week(start time.Weekday) Week {
	first := d.YearMonth().FirstDay()
	lead := mod(int(first.Weekday())-int(start), 7)
	index := int(math.Ceil(float64(d.Subtract(first)+1+lead)/7)) - 1
	return Week{year: d.year, month: d.month, index: index, start: start}
}

// At combines the date with a clock time.
func (d Day) At(hour, minute, second int) (Time, error) {
	if err := validateClock("solar.Day.At", hour, minute, second); err != nil {
		return Time{}, err
	}
	return Time{date: d, hour: hour, minute: minute, second: second}, nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}
