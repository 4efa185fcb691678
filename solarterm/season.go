package solarterm

import (
	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/solar"
)

// Boundary names a season boundary: one of the astronomical equinoxes and
// solstices, or one of the four traditional "start of" terms.
type Boundary int

const (
	StartOfSpringBoundary Boundary = iota
	SpringEquinox
	StartOfSummer
	SummerSolstice
	StartOfAutumn
	AutumnEquinox
	StartOfWinter
	WinterSolstice
)

var boundaryNames = [...]string{
	"start of spring",
	"spring equinox",
	"start of summer",
	"summer solstice",
	"start of autumn",
	"autumn equinox",
	"start of winter",
	"winter solstice",
}

func (b Boundary) String() string {
	if b < 0 || int(b) >= len(boundaryNames) {
		return "unknown"
	}
	return boundaryNames[b]
}

// termIndex maps a boundary in calendar year year to its term year and index.
// The December solstice opens the following term year.
func (b Boundary) termIndex(year int) (int, int) {
	if b == WinterSolstice {
		return year + 1, 0
	}
	return year, StartOfSpring + 3*int(b)
}

// Season returns the term marking boundary b in calendar year year.
func (l *Locator) Season(year int, b Boundary) (Term, error) {
	const op = "solarterm.Season"
	if year < solar.MinYear || year > solar.MaxYear {
		return Term{}, calerr.Invalid(op, "year %d", year)
	}
	if b < StartOfSpringBoundary || b > WinterSolstice {
		return Term{}, calerr.Invalid(op, "boundary %d", int(b))
	}
	return l.solve(b.termIndex(year))
}
