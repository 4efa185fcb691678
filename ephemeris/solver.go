// Package ephemeris computes the apparent longitudes of the Sun and the Moon
// and finds the instants at which they reach a given angle.
//
// Positions are evaluated in dynamical time (TT). The solver takes and returns
// instants in the engine's civil time, which is UTC+8, converting through
// DeltaT on the way in and out.
package ephemeris

import (
	"math"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/jd"
)

const (
	j2000 = jd.J2000

	// CivilOffset is the offset of the civil time from UT, in days (UTC+8).
	CivilOffset = 8.0 / 24

	// MaxIterations caps the Newton iteration of SolveCrossing.
	MaxIterations = 20

	// Tolerance is the step size, in days, below which a root is accepted.
	Tolerance = 1e-7
)

// Kind selects the angle a crossing is solved for.
type Kind int

const (
	// SunLongitude is the apparent ecliptic longitude of the Sun.
	SunLongitude Kind = iota
	// MoonElongation is the apparent longitude of the Moon minus the Sun's.
	MoonElongation
)

func (k Kind) String() string {
	switch k {
	case SunLongitude:
		return "sun"
	case MoonElongation:
		return "moon"
	default:
		return "unknown"
	}
}

// angle evaluates the longitude function of the kind at a TT Julian Day.
func (k Kind) angle(jdTT float64) float64 {
	if k == MoonElongation {
		return LunarElongation(jdTT)
	}
	return SolarLongitude(jdTT)
}

// ToDynamical converts a civil-time Julian Day to dynamical time.
func ToDynamical(civil jd.JulianDay) float64 {
	ut := float64(civil) - CivilOffset
	return ut + DeltaT(decimalYear(ut))/jd.SecondsPerDay
}

// ToCivil converts a dynamical-time Julian Day to civil time.
func ToCivil(jdTT float64) jd.JulianDay {
	ut := jdTT - DeltaT(decimalYear(jdTT))/jd.SecondsPerDay
	return jd.JulianDay(ut + CivilOffset)
}

// CacheKey identifies one solved crossing. Two requests with the same kind,
// target and approximate civil day resolve to the same root.
type CacheKey struct {
	Kind      Kind
	Target    float64
	ApproxDay int
}

// Cache memoizes solved crossings. Implementations must be safe for
// concurrent use.
type Cache interface {
	Lookup(key CacheKey) (jd.JulianDay, bool)
	Store(key CacheKey, value jd.JulianDay)
}

// Options configures a Solver. The zero value is usable.
type Options struct {
	// Cache, if set, memoizes solutions.
	Cache Cache

	// MaxIterations overrides the iteration cap. Zero means MaxIterations.
	MaxIterations int

	// Tolerance overrides the convergence threshold in days. Zero means
	// Tolerance.
	Tolerance float64
}

// Solver finds the instants at which a longitude function reaches a target
// angle. A Solver is safe for concurrent use if its cache is.
type Solver struct {
	cache   Cache
	maxIter int
	tol     float64
}

// NewSolver returns a solver configured by opts.
func NewSolver(opts Options) *Solver {
	s := &Solver{cache: opts.Cache, maxIter: opts.MaxIterations, tol: opts.Tolerance}
	if s.maxIter <= 0 {
		s.maxIter = MaxIterations
	}
	if s.tol <= 0 {
		s.tol = Tolerance
	}
	return s
}

// SolveCrossing returns the civil instant nearest to approx at which the
// angle selected by kind equals target (degrees, taken mod 360).
//
// approx must be within a few days of the root for MoonElongation and within
// a few weeks for SunLongitude, or a neighbouring crossing may be found.
func (s *Solver) SolveCrossing(kind Kind, target float64, approx jd.JulianDay) (jd.JulianDay, error) {
	target = normalize(target)
	key := CacheKey{Kind: kind, Target: target, ApproxDay: approx.DayNumber()}
	if s.cache != nil {
		if v, ok := s.cache.Lookup(key); ok {
			return v, nil
		}
	}

	root, err := s.newton(kind, target, ToDynamical(approx))
	if err != nil {
		return 0, err
	}
	result := ToCivil(root)

	if s.cache != nil {
		s.cache.Store(key, result)
	}
	return result, nil
}

// rateStep is the half width, in days, of the central difference used for
// the derivative.
const rateStep = 1e-3

func (s *Solver) newton(kind Kind, target, t float64) (float64, error) {
	for i := 0; i < s.maxIter; i++ {
		f := difference(kind.angle(t), target)
		rate := difference(kind.angle(t+rateStep), kind.angle(t-rateStep)) / (2 * rateStep)
		if rate == 0 || math.IsNaN(rate) {
			break
		}
		step := f / rate
		t -= step
		if math.Abs(step) < s.tol {
			return t, nil
		}
	}
	return 0, calerr.NoConvergence("ephemeris.SolveCrossing",
		"%s target=%g after %d iterations", kind, target, s.maxIter)
}
