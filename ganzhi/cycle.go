// Package ganzhi computes sexagenary (stem-branch) cycles and the four
// pillars of a moment: year, month, day and two-hour period.
//
// Year and month pillars follow the solar terms, not the lunar months: the
// year changes at the Start of Spring and the month at each sectional term
// (jie). Day pillars run continuously with the civil day.
package ganzhi

import (
	"github.com/zapponejosh/lunisolar/calerr"
)

// Stem is a heavenly stem, 0 (jia) to 9 (gui).
type Stem int

var stemNames = [10]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}

// Next returns the stem n steps after s.
func (s Stem) Next(n int) Stem { return Stem(mod(int(s)+n, 10)) }

// StepsTo returns how many steps forward reach target, 0..9.
func (s Stem) StepsTo(target Stem) int { return mod(int(target)-int(s), 10) }

func (s Stem) String() string {
	if s < 0 || s > 9 {
		return "unknown"
	}
	return stemNames[s]
}

// Branch is an earthly branch, 0 (zi) to 11 (hai).
type Branch int

var branchNames = [12]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}

// Next returns the branch n steps after b.
func (b Branch) Next(n int) Branch { return Branch(mod(int(b)+n, 12)) }

// StepsTo returns how many steps forward reach target, 0..11.
func (b Branch) StepsTo(target Branch) int { return mod(int(target)-int(b), 12) }

func (b Branch) String() string {
	if b < 0 || b > 11 {
		return "unknown"
	}
	return branchNames[b]
}

// Cycle is a position in the sixty-step stem-branch cycle. 0 is jiazi.
type Cycle int

// CycleLength is the number of positions in the cycle.
const CycleLength = 60

// NewCycle validates a cycle index.
func NewCycle(index int) (Cycle, error) {
	if index < 0 || index >= CycleLength {
		return 0, calerr.Invalid("ganzhi.NewCycle", "cycle index %d", index)
	}
	return Cycle(index), nil
}

// FromStemBranch returns the cycle position pairing stem and branch. Only
// pairs of equal parity occur.
//
// Examples:
//   - FromStemBranch(0, 0): jiazi (0)
//   - FromStemBranch(2, 2): bingyin (2)
//   - FromStemBranch(0, 1): invalid
func FromStemBranch(stem Stem, branch Branch) (Cycle, error) {
	const op = "ganzhi.FromStemBranch"
	if stem < 0 || stem > 9 {
		return 0, calerr.Invalid(op, "stem %d", stem)
	}
	if branch < 0 || branch > 11 {
		return 0, calerr.Invalid(op, "branch %d", branch)
	}
	if int(stem)%2 != int(branch)%2 {
		return 0, calerr.Invalid(op, "stem %s with branch %s", stem, branch)
	}
	return fromStemBranch(stem, branch), nil
}

// fromStemBranch solves i = stem (mod 10), i = branch (mod 12).
func fromStemBranch(stem Stem, branch Branch) Cycle {
	return Cycle(mod(6*int(stem)-5*int(branch), CycleLength))
}

func (c Cycle) Index() int       { return int(c) }
func (c Cycle) Stem() Stem       { return Stem(mod(int(c), 10)) }
func (c Cycle) Branch() Branch   { return Branch(mod(int(c), 12)) }
func (c Cycle) Next(n int) Cycle { return Cycle(mod(int(c)+n, CycleLength)) }

// Valid reports whether c is inside 0..59.
func (c Cycle) Valid() bool { return c >= 0 && c < CycleLength }

func (c Cycle) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return c.Stem().String() + c.Branch().String()
}

// ParseCycle returns the cycle position with the given name, e.g. "jiachen".
func ParseCycle(name string) (Cycle, error) {
	for c := Cycle(0); c < CycleLength; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, calerr.Invalid("ganzhi.ParseCycle", "cycle name %q", name)
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
