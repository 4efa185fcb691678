// Package solar provides validated solar calendar values: years, months, days
// and times, plus the coarser groupings an almanac reports (quarter seasons,
// half years and weeks of a month).
//
// Every value is an immutable struct built through a constructor that rejects
// malformed fields. Dates before 1600 follow the Julian leap rule, and the ten
// days 1582-10-05 through 1582-10-14 do not exist.
package solar

import (
	"fmt"

	"github.com/zapponejosh/lunisolar/calerr"
)

// Supported year range.
const (
	MinYear = 1
	MaxYear = 9999
)

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has a February 29th.
//
// Years before 1600 use the Julian rule (every fourth year). From 1600 on the
// Gregorian century rule applies.
func IsLeapYear(year int) bool {
	if year < 1600 {
		return year%4 == 0
	}
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// lastDay returns the highest valid day-of-month label. 1582-10 still ends on
// the 31st even though only 21 of its days exist.
func lastDay(year, month int) int {
	d := monthDays[month-1]
	if month == 2 && IsLeapYear(year) {
		d++
	}
	return d
}

// inGregorianGap reports whether the date is one of the ten dropped days.
func inGregorianGap(year, month, day int) bool {
	return year == 1582 && month == 10 && day > 4 && day < 15
}

func validateYear(op string, year int) error {
	if year < MinYear || year > MaxYear {
		return calerr.Invalid(op, "year %d", year)
	}
	return nil
}

func validateMonth(op string, year, month int) error {
	if err := validateYear(op, year); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return calerr.Invalid(op, "month %d", month)
	}
	return nil
}

func validateDay(op string, year, month, day int) error {
	if err := validateMonth(op, year, month); err != nil {
		return err
	}
	if day < 1 || day > lastDay(year, month) {
		return calerr.Invalid(op, "%04d-%02d-%02d", year, month, day)
	}
	if inGregorianGap(year, month, day) {
		return calerr.Invalid(op, "%04d-%02d-%02d falls in the 1582 calendar reform gap", year, month, day)
	}
	return nil
}

func validateClock(op string, hour, minute, second int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return calerr.Invalid(op, "%02d:%02d:%02d", hour, minute, second)
	}
	return nil
}

func validateIndex(op, what string, index, size int) error {
	if index < 0 || index >= size {
		return calerr.Invalid(op, "%s index %d", what, index)
	}
	return nil
}

// mod returns a modulo n in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func pad(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
