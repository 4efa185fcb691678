// Package jd converts between calendar fields and a continuous Julian Day count.
//
// The Julian Day is the linear time axis every other package does arithmetic on.
// Its integer part counts days from noon; a fraction of .5 is civil midnight.
// Dates before 1582-10-15 are read as Julian calendar dates and dates on or
// after it as Gregorian, so 1582-10-04 and 1582-10-15 are consecutive days.
//
// This package does no validation: it evaluates the formulas for whatever
// fields it is given. Validated calendar values live in package solar.
package jd

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Day of 2000-01-01 12:00.
	J2000 = 2451545.0

	// GregorianStart is the first day number of the Gregorian calendar (1582-10-15).
	GregorianStart = 2299161

	// SecondsPerDay is the number of seconds in one civil day.
	SecondsPerDay = 86400
)

// JulianDay is a point on the continuous day axis.
type JulianDay float64

// FromCalendar returns the Julian Day of the given calendar fields.
//
// Examples:
//   - FromCalendar(2000, 1, 1, 12, 0, 0) = 2451545.0
//   - FromCalendar(1582, 10, 4, 0, 0, 0) = 2299159.5 (Julian calendar)
//   - FromCalendar(1582, 10, 15, 0, 0, 0) = 2299160.5 (Gregorian calendar)
func FromCalendar(year, month, day, hour, minute, second int) JulianDay {
	gregorian := year*372+month*31+day >= 1582*372+10*31+15

	y := float64(year)
	m := float64(month)
	if month <= 2 {
		y--
		m += 12
	}

	b := 0.0
	if gregorian {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}

	d := float64(day) + (float64(hour)*3600+float64(minute)*60+float64(second))/SecondsPerDay
	return JulianDay(math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5)
}

// FromDayNumber returns the Julian Day of midnight starting the given day number.
func FromDayNumber(n int) JulianDay {
	return JulianDay(float64(n) - 0.5)
}

// Calendar returns the calendar fields of j. The time of day is rounded to the
// nearest second; a rounding that reaches 24:00 carries into the next day.
func (j JulianDay) Calendar() (year, month, day, hour, minute, second int) {
	n := j.DayNumber()
	secs := int(math.Round((float64(j) + 0.5 - float64(n)) * SecondsPerDay))
	if secs >= SecondsPerDay {
		n++
		secs -= SecondsPerDay
	}

	year, month, day = dateOf(n)
	hour = secs / 3600
	minute = secs % 3600 / 60
	second = secs % 60
	return year, month, day, hour, minute, second
}

// Date returns the calendar date containing j, ignoring the time of day.
func (j JulianDay) Date() (year, month, day int) {
	return dateOf(j.DayNumber())
}

// dateOf is the inverse of FromCalendar for a whole day number.
func dateOf(n int) (year, month, day int) {
	z := float64(n)
	a := z
	if n >= GregorianStart {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = int(b - d - math.Floor(30.6001*e))
	month = int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}
	year = int(c) - 4716
	if month <= 2 {
		year = int(c) - 4715
	}
	return year, month, day
}

// DayNumber returns the civil day count containing j: floor(j + 0.5).
// Two instants on the same civil day share a day number.
func (j JulianDay) DayNumber() int {
	return int(math.Floor(float64(j) + 0.5))
}

// Add returns j moved by the given number of days.
func (j JulianDay) Add(days float64) JulianDay {
	return j + JulianDay(days)
}

// Sub returns the number of days from other to j.
func (j JulianDay) Sub(other JulianDay) float64 {
	return float64(j - other)
}

// Before reports whether j is earlier than other.
func (j JulianDay) Before(other JulianDay) bool {
	return j < other
}

// Weekday returns the day of week of the civil day containing j.
func (j JulianDay) Weekday() time.Weekday {
	return time.Weekday(mod(j.DayNumber()+1, 7))
}

// Centuries returns the Julian centuries elapsed since J2000.
func (j JulianDay) Centuries() float64 {
	return (float64(j) - J2000) / 36525
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
