package ephemeris

import "math"

const (
	deg = math.Pi / 180

	// fk5Correction converts VSOP87 longitudes to the FK5 frame (degrees).
	fk5Correction = -0.09033 / 3600

	// aberrationConstant is the annual aberration at 1 AU (degrees).
	aberrationConstant = -20.4898 / 3600
)

// Nutation returns the nutation in longitude in degrees for a dynamical-time
// Julian Day, from the four largest terms of the IAU 1980 series.
func Nutation(jdTT float64) float64 {
	t := (jdTT - j2000) / 36525
	omega := (125.04452 - 1934.136261*t) * deg
	sunMean := (280.4665 + 36000.7698*t) * deg
	moonMean := (218.3165 + 481267.8813*t) * deg

	arcsec := -17.20*math.Sin(omega) -
		1.32*math.Sin(2*sunMean) -
		0.23*math.Sin(2*moonMean) +
		0.21*math.Sin(2*omega)
	return arcsec / 3600
}

// SolarLongitude returns the apparent geocentric ecliptic longitude of the Sun
// in degrees [0, 360) at a dynamical-time Julian Day.
//
// The geometric longitude from VSOP87 is reduced to FK5, then nutation and
// annual aberration (the light-time displacement) are applied.
func SolarLongitude(jdTT float64) float64 {
	tau := (jdTT - j2000) / 365250
	l, _, r := earthPosition(tau)

	lon := l/deg + 180 + fk5Correction
	lon += Nutation(jdTT)
	lon += aberrationConstant / r
	return normalize(lon)
}

// normalize maps an angle in degrees into [0, 360).
func normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// difference returns a-b mapped into (-180, 180].
func difference(a, b float64) float64 {
	d := normalize(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}
