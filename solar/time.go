package solar

import (
	"fmt"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/jd"
)

// Time is a validated date with a clock time to the second, in the engine's
// single civil time.
type Time struct {
	date                 Day
	hour, minute, second int
}

// NewTime validates and returns the instant.
func NewTime(year, month, day, hour, minute, second int) (Time, error) {
	const op = "solar.NewTime"
	if err := validateDay(op, year, month, day); err != nil {
		return Time{}, err
	}
	if err := validateClock(op, hour, minute, second); err != nil {
		return Time{}, err
	}
	return Time{
		date:   Day{year: year, month: month, day: day},
		hour:   hour,
		minute: minute,
		second: second,
	}, nil
}

// TimeFromJulianDay converts a Julian Day back to calendar fields, rounded to
// the nearest second.
func TimeFromJulianDay(j jd.JulianDay) (Time, error) {
	y, m, d, h, mi, s := j.Calendar()
	if err := validateYear("solar.TimeFromJulianDay", y); err != nil {
		return Time{}, err
	}
	return Time{date: Day{year: y, month: m, day: d}, hour: h, minute: mi, second: s}, nil
}

// ParseTime parses "YYYY-MM-DD HH:MM:SS". The seconds may be omitted.
func ParseTime(s string) (Time, error) {
	var y, mo, d, h, mi, sec int
	n, _ := fmt.Sscanf(s, "%d-%d-%d %d:%d:%d", &y, &mo, &d, &h, &mi, &sec)
	if n < 5 {
		return Time{}, calerr.Invalid("solar.ParseTime", "%q", s)
	}
	return NewTime(y, mo, d, h, mi, sec)
}

// Date returns the calendar date of the instant.
func (t Time) Date() Day { return t.date }

func (t Time) Hour() int   { return t.hour }
func (t Time) Minute() int { return t.minute }
func (t Time) Second() int { return t.second }

// JulianDay returns the Julian Day of the instant.
func (t Time) JulianDay() jd.JulianDay {
	return jd.FromCalendar(t.date.year, t.date.month, t.date.day, t.hour, t.minute, t.second)
}

// secondOfDay returns seconds since midnight.
func (t Time) secondOfDay() int {
	return t.hour*3600 + t.minute*60 + t.second
}

// Next returns the instant n seconds later.
func (t Time) Next(seconds int) (Time, error) {
	if seconds == 0 {
		return t, nil
	}
	total := t.secondOfDay() + seconds
	date, err := t.date.Next(floorDiv(total, jd.SecondsPerDay))
	if err != nil {
		return Time{}, err
	}
	rem := mod(total, jd.SecondsPerDay)
	return Time{date: date, hour: rem / 3600, minute: rem % 3600 / 60, second: rem % 60}, nil
}

// Subtract returns the number of seconds from other to t.
func (t Time) Subtract(other Time) int {
	return t.date.Subtract(other.date)*jd.SecondsPerDay + t.secondOfDay() - other.secondOfDay()
}

// Before reports whether t is earlier than other.
func (t Time) Before(other Time) bool {
	if t.date != other.date {
		return t.date.Before(other.date)
	}
	return t.secondOfDay() < other.secondOfDay()
}

// After reports whether t is later than other.
func (t Time) After(other Time) bool {
	return other.Before(t)
}

func (t Time) String() string {
	return fmt.Sprintf("%s %02d:%02d:%02d", t.date, t.hour, t.minute, t.second)
}
