// Package solarterm locates the 24 solar terms: the instants at which the
// Sun's apparent longitude reaches a multiple of 15 degrees.
//
// Terms are numbered per term year. Index 0 is the winter solstice falling in
// December of the previous calendar year, so term year Y runs from the
// December solstice of Y-1 to just before the December solstice of Y. Odd
// indices are Jie (sectional) terms and even indices are Qi (principal or
// "zhongqi") terms.
package solarterm

import (
	"math"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
	"github.com/zapponejosh/lunisolar/solar"
)

const (
	// Count is the number of terms in a term year.
	Count = 24

	// StartOfSpring is the index of the term that opens the sexagenary year.
	StartOfSpring = 3

	// meanSolstice is the civil Julian Day of the December 2000 solstice,
	// the anchor for initial guesses.
	meanSolstice = 2451900.40

	tropicalYear = 365.2422
	meanTermSpan = tropicalYear / Count
)

// Term is one solved solar term.
type Term struct {
	Year      int
	Index     int
	JulianDay jd.JulianDay
}

// IsJie reports whether the term is a sectional (odd-indexed) term.
func (t Term) IsJie() bool { return t.Index%2 == 1 }

// IsQi reports whether the term is a principal (even-indexed) term.
func (t Term) IsQi() bool { return t.Index%2 == 0 }

// Longitude returns the solar longitude of the term in degrees.
func (t Term) Longitude() float64 { return Longitude(t.Index) }

// DayNumber returns the civil day number on which the term falls.
func (t Term) DayNumber() int { return t.JulianDay.DayNumber() }

// Day returns the civil date on which the term falls.
func (t Term) Day() (solar.Day, error) {
	return solar.DayFromJulianDay(t.JulianDay)
}

var names = [Count]string{
	"dongzhi", "xiaohan", "dahan", "lichun", "yushui", "jingzhe",
	"chunfen", "qingming", "guyu", "lixia", "xiaoman", "mangzhong",
	"xiazhi", "xiaoshu", "dashu", "liqiu", "chushu", "bailu",
	"qiufen", "hanlu", "shuangjiang", "lidong", "xiaoxue", "daxue",
}

// Name returns the pinyin name of the term, e.g. "lichun".
func (t Term) Name() string { return Name(t.Index) }

// Name returns the pinyin name of a term index.
func Name(index int) string {
	if index < 0 || index >= Count {
		return "unknown"
	}
	return names[index]
}

// Longitude returns the target solar longitude for a term index.
func Longitude(index int) float64 {
	return float64(mod(270+15*index, 360))
}

// Shift returns the (year, index) pair n terms away, rolling the year when
// the index leaves 0..23.
func Shift(year, index, n int) (int, int) {
	i := index + n
	return year + floorDiv(i, Count), mod(i, Count)
}

// Locator finds solar term instants with an ephemeris solver.
type Locator struct {
	solver *ephemeris.Solver
}

// New returns a Locator backed by solver.
func New(solver *ephemeris.Solver) *Locator {
	return &Locator{solver: solver}
}

// Term returns term index of term year year.
//
// Examples:
//   - Term(2024, 0): winter solstice, 2023-12-22
//   - Term(2024, 3): start of spring, 2024-02-04
func (l *Locator) Term(year, index int) (Term, error) {
	const op = "solarterm.Term"
	if year < solar.MinYear || year > solar.MaxYear {
		return Term{}, calerr.Invalid(op, "year %d", year)
	}
	if index < 0 || index >= Count {
		return Term{}, calerr.Invalid(op, "index %d", index)
	}
	return l.solve(year, index)
}

// Instant solves a term without range-checking the year. The lunar calendar
// uses it to reach the solstices just outside 1..9999.
func (l *Locator) Instant(year, index int) (jd.JulianDay, error) {
	return l.solver.SolveCrossing(ephemeris.SunLongitude, Longitude(index), approx(year, index))
}

func (l *Locator) solve(year, index int) (Term, error) {
	j, err := l.Instant(year, index)
	if err != nil {
		return Term{}, err
	}
	return Term{Year: year, Index: index, JulianDay: j}, nil
}

// step is Next without the year range check.
func (l *Locator) step(t Term, n int) (Term, error) {
	year, index := Shift(t.Year, t.Index, n)
	return l.solve(year, index)
}

// approx estimates a term instant from the mean tropical year.
func approx(year, index int) jd.JulianDay {
	return jd.JulianDay(meanSolstice + float64(year-2001)*tropicalYear + float64(index)*meanTermSpan)
}

// Year returns all 24 terms of a term year in order.
func (l *Locator) Year(year int) ([]Term, error) {
	terms := make([]Term, Count)
	for i := range terms {
		t, err := l.Term(year, i)
		if err != nil {
			return nil, err
		}
		terms[i] = t
	}
	return terms, nil
}

// Next returns the term n steps after t (before it for negative n).
func (l *Locator) Next(t Term, n int) (Term, error) {
	year, index := Shift(t.Year, t.Index, n)
	return l.Term(year, index)
}

// Containing returns the term in effect at instant j: the latest term whose
// instant is not after j. Near the ends of the calendar the result may carry
// term year 10000 (the December 9999 solstice onward).
func (l *Locator) Containing(j jd.JulianDay) (Term, error) {
	y, m, _ := j.Date()
	lon := ephemeris.SolarLongitude(ephemeris.ToDynamical(j))
	index := int(math.Mod(lon-270+360, 360)/15) % Count
	year := y
	if m >= 7 && index < 12 {
		year++
	}

	t, err := l.solve(year, index)
	if err != nil {
		return Term{}, err
	}
	// Longitude rounding can land one term off near a boundary.
	for t.JulianDay > j {
		if t, err = l.step(t, -1); err != nil {
			return Term{}, err
		}
	}
	for {
		next, err := l.step(t, 1)
		if err != nil {
			return Term{}, err
		}
		if next.JulianDay > j {
			return t, nil
		}
		t = next
	}
}

// ContainingDay returns the term in effect on a civil day, where a term takes
// effect on the whole day it falls on, and the zero-based day index within
// that term.
func (l *Locator) ContainingDay(day solar.Day) (Term, int, error) {
	// Start from the sectional term early in the following month and walk back.
	year, index := Shift(day.Year(), day.Month()*2, 1)
	t, err := l.solve(year, index)
	if err != nil {
		return Term{}, 0, err
	}
	n := day.DayNumber()
	for n < t.DayNumber() {
		if t, err = l.step(t, -1); err != nil {
			return Term{}, 0, err
		}
	}
	return t, n - t.DayNumber(), nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
