package newmoon

import (
	"math"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
)

// Phase is one of the four principal moon phases.
type Phase int

const (
	NewMoon Phase = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

var phaseNames = [...]string{"new moon", "first quarter", "full moon", "last quarter"}

func (p Phase) String() string {
	if p < NewMoon || p > LastQuarter {
		return "unknown"
	}
	return phaseNames[p]
}

// Angle returns the Moon-Sun elongation at the phase, in degrees.
func (p Phase) Angle() float64 { return 90 * float64(p) }

// PhaseInstant is a principal phase and the instant it occurs.
type PhaseInstant struct {
	Phase     Phase
	JulianDay jd.JulianDay
}

// meanElongationRate is the mean daily motion of the Moon relative to the
// Sun, in degrees.
const meanElongationRate = 360 / SynodicMonth

// Phase returns the instant of phase p in the lunation nearest approx.
func (l *Locator) Phase(approx jd.JulianDay, p Phase) (jd.JulianDay, error) {
	if p < NewMoon || p > LastQuarter {
		return 0, calerr.Invalid("newmoon.Phase", "phase %d", int(p))
	}
	k := int(math.Round((float64(approx)-anchor)/SynodicMonth - float64(p)/4))
	return l.phase(k, p)
}

// PhaseContaining returns the latest principal phase at or before j.
func (l *Locator) PhaseContaining(j jd.JulianDay) (PhaseInstant, error) {
	e := ephemeris.LunarElongation(ephemeris.ToDynamical(j))
	p := Phase(int(e/90) % 4)
	guess := j.Add(-(e - p.Angle()) / meanElongationRate)

	at, err := l.solver.SolveCrossing(ephemeris.MoonElongation, p.Angle(), guess)
	if err != nil {
		return PhaseInstant{}, err
	}
	if at > j {
		p = (p + 3) % 4
		at, err = l.solver.SolveCrossing(ephemeris.MoonElongation, p.Angle(), at.Add(-SynodicMonth/4))
		if err != nil {
			return PhaseInstant{}, err
		}
	}
	return PhaseInstant{Phase: p, JulianDay: at}, nil
}
