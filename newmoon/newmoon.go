// Package newmoon locates new moons (conjunctions of the Sun and Moon in
// apparent longitude), which bound the lunar months, and the other three
// principal moon phases.
package newmoon

import (
	"math"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
)

const (
	// SynodicMonth is the mean length of a lunation in days.
	SynodicMonth = 29.530588861

	// anchor is the civil Julian Day of the mean new moon of 2000-01-06,
	// lunation 0.
	anchor = 2451550.43
)

// Locator finds new moons and moon phases with an ephemeris solver.
type Locator struct {
	solver *ephemeris.Solver
}

// New returns a Locator backed by solver.
func New(solver *ephemeris.Solver) *Locator {
	return &Locator{solver: solver}
}

// lunationNear returns the number of the mean lunation closest to j.
func lunationNear(j jd.JulianDay) int {
	return int(math.Round((float64(j) - anchor) / SynodicMonth))
}

// Lunation returns new moon number k, counted from the one of January 2000.
func (l *Locator) Lunation(k int) (jd.JulianDay, error) {
	return l.phase(k, NewMoon)
}

func (l *Locator) phase(k int, p Phase) (jd.JulianDay, error) {
	guess := jd.JulianDay(anchor + (float64(k)+float64(p)/4)*SynodicMonth)
	return l.solver.SolveCrossing(ephemeris.MoonElongation, p.Angle(), guess)
}

// Nearest returns the new moon of the lunation whose mean conjunction is
// closest to approx.
func (l *Locator) Nearest(approx jd.JulianDay) (jd.JulianDay, error) {
	return l.Lunation(lunationNear(approx))
}

// OnOrBefore returns the latest new moon falling on or before the civil day
// with the given day number.
func (l *Locator) OnOrBefore(dayNumber int) (jd.JulianDay, error) {
	k, err := l.LunationOnOrBefore(dayNumber)
	if err != nil {
		return 0, err
	}
	return l.Lunation(k)
}

// LunationOnOrBefore is OnOrBefore returning the lunation number.
func (l *Locator) LunationOnOrBefore(dayNumber int) (int, error) {
	k := lunationNear(jd.FromDayNumber(dayNumber))
	nm, err := l.Lunation(k)
	if err != nil {
		return 0, err
	}
	for nm.DayNumber() > dayNumber {
		k--
		if nm, err = l.Lunation(k); err != nil {
			return 0, err
		}
	}
	for {
		next, err := l.Lunation(k + 1)
		if err != nil {
			return 0, err
		}
		if next.DayNumber() > dayNumber {
			return k, nil
		}
		k++
	}
}

// After returns the first new moon strictly after j.
func (l *Locator) After(j jd.JulianDay) (jd.JulianDay, error) {
	k := lunationNear(j)
	nm, err := l.Lunation(k)
	if err != nil {
		return 0, err
	}
	for nm <= j {
		k++
		if nm, err = l.Lunation(k); err != nil {
			return 0, err
		}
	}
	for {
		prev, err := l.Lunation(k - 1)
		if err != nil {
			return 0, err
		}
		if prev <= j {
			return nm, nil
		}
		k, nm = k-1, prev
	}
}

// Sequence returns n consecutive new moons, starting with the one nearest
// start.
func (l *Locator) Sequence(start jd.JulianDay, n int) ([]jd.JulianDay, error) {
	if n < 0 {
		return nil, calerr.Invalid("newmoon.Sequence", "count %d", n)
	}
	k := lunationNear(start)
	out := make([]jd.JulianDay, n)
	for i := range out {
		nm, err := l.Lunation(k + i)
		if err != nil {
			return nil, err
		}
		out[i] = nm
	}
	return out, nil
}
