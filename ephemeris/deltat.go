package ephemeris

// DeltaT returns TT - UT in seconds for a decimal year, using the
// Espenak-Meeus polynomial fits. Outside the historical record it falls back
// to the long-term parabola, with the lunar secular acceleration correction
// blended in between 2050 and 2150.
func DeltaT(year float64) float64 {
	y := year
	switch {
	case y < -500:
		return longTerm(y)
	case y < 500:
		u := y / 100
		return poly(u, 10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521)
	case y < 1600:
		u := (y - 1000) / 100
		return poly(u, 1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073)
	case y < 1700:
		t := y - 1600
		return poly(t, 120, -0.9808, -0.01532, 1.0/7129)
	case y < 1800:
		t := y - 1700
		return poly(t, 8.83, 0.1603, -0.0059285, 0.00013336, -1.0/1174000)
	case y < 1860:
		t := y - 1800
		return poly(t, 13.72, -0.332447, 0.0068612, 0.0041116, -0.00037436, 0.0000121272, -0.0000001699, 0.000000000875)
	case y < 1900:
		t := y - 1860
		return poly(t, 7.62, 0.5737, -0.251754, 0.01680668, -0.0004473624, 1.0/233174)
	case y < 1920:
		t := y - 1900
		return poly(t, -2.79, 1.494119, -0.0598939, 0.0061966, -0.000197)
	case y < 1941:
		t := y - 1920
		return poly(t, 21.20, 0.84493, -0.076100, 0.0020936)
	case y < 1961:
		t := y - 1950
		return poly(t, 29.07, 0.407, -1.0/233, 1.0/2547)
	case y < 1986:
		t := y - 1975
		return poly(t, 45.45, 1.067, -1.0/260, -1.0/718)
	case y < 2005:
		t := y - 2000
		return poly(t, 63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599)
	case y < 2050:
		t := y - 2000
		return poly(t, 62.92, 0.32217, 0.005589)
	case y < 2150:
		return longTerm(y) - 0.5628*(2150-y)
	default:
		return longTerm(y)
	}
}

func longTerm(y float64) float64 {
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ... by Horner's rule.
func poly(x float64, c ...float64) float64 {
	var r float64
	for i := len(c) - 1; i >= 0; i-- {
		r = r*x + c[i]
	}
	return r
}

// decimalYear approximates the calendar year of a Julian Day, which is all
// the precision DeltaT needs.
func decimalYear(jd float64) float64 {
	return 2000 + (jd-j2000)/365.2425
}
