package ephemeris

import "math"

// moonTerm is one periodic term of the lunar longitude: coefficient (in 1e-6
// degree) times sin(d*D + m*M + mp*M' + f*F).
type moonTerm struct {
	d, m, mp, f float64
	coeff       float64
}

// Main periodic terms of the ELP-2000/82 lunar longitude, truncated.
var moonLongitude = []moonTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
	{0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069},
	{2, -2, -1, 0, 2048},
	{2, 0, 1, -2, -1773},
	{2, 0, 0, 2, -1595},
	{4, -1, -1, 0, 1215},
	{0, 0, 2, 2, -1110},
	{3, 0, -1, 0, -892},
	{2, 1, 1, 0, -810},
	{4, -1, -2, 0, 759},
	{0, 2, -1, 0, -713},
	{2, 2, -1, 0, -700},
	{2, 1, -2, 0, 691},
	{2, -1, 0, -2, 596},
	{4, 0, 1, 0, 549},
	{0, 0, 4, 0, 537},
	{4, -1, 0, 0, 520},
	{1, 0, -2, 0, -487},
	{2, 1, 0, -2, -399},
	{0, 0, 2, -2, -381},
	{1, 1, 1, 0, 351},
	{3, 0, -2, 0, -340},
	{4, 0, -3, 0, 330},
	{2, -1, 2, 0, 327},
	{0, 2, 1, 0, -323},
	{1, 1, -1, 0, 299},
	{0, 0, 3, -2, 294},
}

// moonLightTime is the displacement of the Moon during the ~1.3 s its light
// takes to reach the Earth (degrees).
const moonLightTime = -0.7 / 3600

// LunarLongitude returns the apparent geocentric ecliptic longitude of the
// Moon in degrees [0, 360) at a dynamical-time Julian Day.
func LunarLongitude(jdTT float64) float64 {
	t := (jdTT - j2000) / 36525
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t

	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000

	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t

	// Terms involving the Sun's mean anomaly shrink with the Earth's
	// orbital eccentricity.
	e := 1 - 0.002516*t - 0.0000074*t2

	var sum float64
	for _, k := range moonLongitude {
		arg := (k.d*d + k.m*m + k.mp*mp + k.f*f) * deg
		c := k.coeff
		switch math.Abs(k.m) {
		case 1:
			c *= e
		case 2:
			c *= e * e
		}
		sum += c * math.Sin(arg)
	}
	sum += 3958*math.Sin(a1*deg) + 1962*math.Sin((lp-f)*deg) + 318*math.Sin(a2*deg)

	lon := lp + sum/1e6
	lon += Nutation(jdTT) + moonLightTime
	return normalize(lon)
}

// LunarElongation returns the apparent longitude of the Moon minus that of
// the Sun, in degrees [0, 360). It is 0 at new moon and 180 at full moon.
func LunarElongation(jdTT float64) float64 {
	return normalize(LunarLongitude(jdTT) - SolarLongitude(jdTT))
}
