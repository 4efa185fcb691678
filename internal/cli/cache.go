package cli

import (
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
)

// tiered checks its caches in order, fastest first. A hit in a slower tier
// is copied into the faster ones; stores go to every tier.
type tiered []ephemeris.Cache

func (t tiered) Lookup(key ephemeris.CacheKey) (jd.JulianDay, bool) {
	for i, c := range t {
		if v, ok := c.Lookup(key); ok {
			for _, faster := range t[:i] {
				faster.Store(key, v)
			}
			return v, true
		}
	}
	return 0, false
}

func (t tiered) Store(key ephemeris.CacheKey, value jd.JulianDay) {
	for _, c := range t {
		c.Store(key, value)
	}
}

// cache returns t as an ephemeris.Cache, or nil when it has no tiers.
func (t tiered) cache() ephemeris.Cache {
	switch len(t) {
	case 0:
		return nil
	case 1:
		return t[0]
	default:
		return t
	}
}
