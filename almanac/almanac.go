// Package almanac is the entry point to the calendar engine. An Engine wires
// the ephemeris solver, solar term and new moon locators, lunar calendar and
// sexagenary calculator together behind one set of queries.
package almanac

import (
	"log/slog"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/ganzhi"
	"github.com/zapponejosh/lunisolar/jd"
	"github.com/zapponejosh/lunisolar/lunar"
	"github.com/zapponejosh/lunisolar/newmoon"
	"github.com/zapponejosh/lunisolar/solar"
	"github.com/zapponejosh/lunisolar/solarterm"
)

// Options configures an Engine. The zero value is usable: no cache and a
// discarding logger.
type Options struct {
	// Cache memoizes solved crossings, for example an ephemeris.MemoryCache
	// or the SQLite store.
	Cache ephemeris.Cache

	Logger *slog.Logger

	// MaxIterations overrides ephemeris.MaxIterations when positive.
	MaxIterations int
}

// Engine answers calendar queries. It is safe for concurrent use when its
// cache is.
type Engine struct {
	log     *slog.Logger
	terms   *solarterm.Locator
	moons   *newmoon.Locator
	lunar   *lunar.Calendar
	pillars *ganzhi.Calculator
}

// New builds an Engine.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var cache ephemeris.Cache
	if opts.Cache != nil {
		cache = &loggedCache{Cache: opts.Cache, log: log}
	}
	solver := ephemeris.NewSolver(ephemeris.Options{
		Cache:         cache,
		MaxIterations: opts.MaxIterations,
	})

	terms := solarterm.New(solver)
	moons := newmoon.New(solver)
	return &Engine{
		log:     log,
		terms:   terms,
		moons:   moons,
		lunar:   lunar.New(terms, moons),
		pillars: ganzhi.New(terms),
	}
}

// loggedCache reports cache hits at debug level.
type loggedCache struct {
	ephemeris.Cache
	log *slog.Logger
}

func (c *loggedCache) Lookup(key ephemeris.CacheKey) (jd.JulianDay, bool) {
	v, ok := c.Cache.Lookup(key)
	if ok {
		c.log.Debug("ephemeris cache hit",
			"kind", key.Kind.String(),
			"target", key.Target,
			"approx_day", key.ApproxDay,
		)
	}
	return v, ok
}

// check logs engine failures. Validation errors are the caller's problem and
// pass through quietly.
func (e *Engine) check(op string, err error) error {
	if err != nil && calerr.IsConvergence(err) {
		e.log.Error("ephemeris solver did not converge", "op", op, "error", err)
	}
	return err
}

// JulianDayOf returns the Julian Day of a civil time.
func (e *Engine) JulianDayOf(t solar.Time) jd.JulianDay {
	return t.JulianDay()
}

// CalendarOf returns the civil time of a Julian Day, rounded to the second.
func (e *Engine) CalendarOf(j jd.JulianDay) (solar.Time, error) {
	return solar.TimeFromJulianDay(j)
}

// SolarTerm returns term index (0..23) of term year year. Index 0 is the
// winter solstice of December year-1.
func (e *Engine) SolarTerm(year, index int) (solarterm.Term, error) {
	t, err := e.terms.Term(year, index)
	return t, e.check("SolarTerm", err)
}

// SolarTerms returns the 24 terms of a term year.
func (e *Engine) SolarTerms(year int) ([]solarterm.Term, error) {
	terms, err := e.terms.Year(year)
	return terms, e.check("SolarTerms", err)
}

// SolarTermContaining returns the term in effect at instant j.
func (e *Engine) SolarTermContaining(j jd.JulianDay) (solarterm.Term, error) {
	t, err := e.terms.Containing(j)
	return t, e.check("SolarTermContaining", err)
}

// SolarTermOfDay returns the term governing a civil day, where a term covers
// the whole day it falls on, and the number of days since that term's day.
func (e *Engine) SolarTermOfDay(d solar.Day) (solarterm.Term, int, error) {
	t, n, err := e.terms.ContainingDay(d)
	return t, n, e.check("SolarTermOfDay", err)
}

// NewMoonBoundaries returns the new moons bounding the months of a lunar
// year, 13 or 14 instants.
func (e *Engine) NewMoonBoundaries(lunarYear int) ([]jd.JulianDay, error) {
	b, err := e.lunar.NewMoonBoundaries(lunarYear)
	return b, e.check("NewMoonBoundaries", err)
}

// LunarYear assembles a lunar year.
func (e *Engine) LunarYear(year int) (lunar.Year, error) {
	y, err := e.lunar.Year(year)
	return y, e.check("LunarYear", err)
}

// LunarMonth returns one month of a lunar year.
func (e *Engine) LunarMonth(year, month int, leap bool) (lunar.Month, error) {
	m, err := e.lunar.Month(year, month, leap)
	return m, e.check("LunarMonth", err)
}

// LunarDay converts a solar date to the lunar calendar.
func (e *Engine) LunarDay(d solar.Day) (lunar.Day, error) {
	l, err := e.lunar.DayFromSolar(d)
	return l, e.check("LunarDay", err)
}

// SolarDayOf converts a lunar date to the solar calendar.
func (e *Engine) SolarDayOf(d lunar.Day) (solar.Day, error) {
	s, err := e.lunar.SolarDay(d)
	return s, e.check("SolarDayOf", err)
}

// Sexagenary returns one pillar of a moment.
func (e *Engine) Sexagenary(kind ganzhi.Kind, t solar.Time) (ganzhi.Cycle, error) {
	c, err := e.pillars.Pillar(kind, t)
	return c, e.check("Sexagenary", err)
}

// Pillars returns all four pillars of a moment.
func (e *Engine) Pillars(t solar.Time) (ganzhi.Pillars, error) {
	p, err := e.pillars.Pillars(t)
	return p, e.check("Pillars", err)
}

// DayPillars returns the day-level year, month and day pillars of a date.
func (e *Engine) DayPillars(d solar.Day) (ganzhi.ThreePillars, error) {
	p, err := e.pillars.DayPillars(d)
	return p, e.check("DayPillars", err)
}

// FindDays returns the dates in years from..to whose day-level pillars
// equal p.
func (e *Engine) FindDays(p ganzhi.ThreePillars, from, to int) ([]solar.Day, error) {
	days, err := e.pillars.FindDays(p, from, to)
	return days, e.check("FindDays", err)
}

// MoonPhase returns the latest principal moon phase at or before t.
func (e *Engine) MoonPhase(t solar.Time) (newmoon.PhaseInstant, error) {
	p, err := e.moons.PhaseContaining(t.JulianDay())
	return p, e.check("MoonPhase", err)
}
