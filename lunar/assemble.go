package lunar

import (
	"github.com/zapponejosh/lunisolar/jd"
)

// sui is the span between two December solstices, counted in lunations. Its
// month 0 is the 11th month, the one whose first day is on or before the
// opening solstice.
type sui struct {
	first int // lunation number of month 0
	count int // 12 or 13 months
	leap  int // index of the month without a principal term, 0 if none
}

// assembly memoizes the sui spans needed to build neighbouring lunar years.
type assembly struct {
	c    *Calendar
	suis map[int]sui
}

func (c *Calendar) newAssembly() *assembly {
	return &assembly{c: c, suis: make(map[int]sui, 4)}
}

// sui returns the span opened by the solstice of term year year (December
// of year-1).
func (a *assembly) sui(year int) (sui, error) {
	if s, ok := a.suis[year]; ok {
		return s, nil
	}

	open, err := a.c.terms.Instant(year, 0)
	if err != nil {
		return sui{}, err
	}
	closing, err := a.c.terms.Instant(year+1, 0)
	if err != nil {
		return sui{}, err
	}
	first, err := a.c.moons.LunationOnOrBefore(open.DayNumber())
	if err != nil {
		return sui{}, err
	}

	// Day numbers of every new moon from month 0 up to the one that opens
	// the next span.
	days := make([]int, 0, 14)
	for k := first; ; k++ {
		nm, err := a.c.moons.Lunation(k)
		if err != nil {
			return sui{}, err
		}
		if k > first && nm.DayNumber() > closing.DayNumber() {
			break
		}
		days = append(days, nm.DayNumber())
	}

	s := sui{first: first, count: len(days) - 1}
	if s.count == 13 {
		if s.leap, err = a.leapIndex(year, days); err != nil {
			return sui{}, err
		}
	}
	a.suis[year] = s
	return s, nil
}

// leapIndex finds the first month after the solstice month that contains no
// principal term day.
func (a *assembly) leapIndex(year int, days []int) (int, error) {
	qi := make([]int, 0, 11)
	for i := 2; i < 24; i += 2 {
		j, err := a.c.terms.Instant(year, i)
		if err != nil {
			return 0, err
		}
		qi = append(qi, j.DayNumber())
	}

	for m := 1; m < len(days)-1; m++ {
		has := false
		for _, d := range qi {
			if d >= days[m] && d < days[m+1] {
				has = true
				break
			}
		}
		if !has {
			return m, nil
		}
	}
	return 0, nil
}

// firstMonthOffset returns which month of the sui opening lunar year year is
// its 1st month. Normally the 3rd (offset 2), after a leap 11th or 12th month
// the 4th. The historical exceptions are almanac data and must not be
// re-derived.
func firstMonthOffset(year int, s sui) int {
	switch {
	case year >= 9 && year <= 23:
		return 1
	case (s.leap == 1 || s.leap == 2) && year != 239 && year != 240:
		return 3
	default:
		return 2
	}
}

func (a *assembly) rawStart(year int) (int, error) {
	s, err := a.sui(year)
	if err != nil {
		return 0, err
	}
	return s.first + firstMonthOffset(year, s), nil
}

// overrideEnd is the last year of the run that opens one month early.
const overrideEnd = 23

// start returns the lunation number of the 1st month of a lunar year. A year
// never spans more than 13 months. Only the return to the normal rule after
// overrideEnd can produce a longer span; the surplus carries forward one year
// at a time until the normal start is reached again, which takes at most a
// few years.
func (a *assembly) start(year int) (int, error) {
	if year <= overrideEnd || year > overrideEnd+8 {
		return a.rawStart(year)
	}
	s, err := a.rawStart(overrideEnd)
	if err != nil {
		return 0, err
	}
	for y := overrideEnd + 1; y <= year; y++ {
		raw, err := a.rawStart(y)
		if err != nil {
			return 0, err
		}
		if raw-s > 13 {
			s += 13
		} else {
			s = raw
		}
	}
	return s, nil
}

// leapFlags returns the lunation numbers flagged as leap by the sui spans
// that overlap lunar year year.
func (a *assembly) leapFlags(year int) ([]int, error) {
	var flags []int
	for _, y := range []int{year, year + 1} {
		s, err := a.sui(y)
		if err != nil {
			return nil, err
		}
		if s.leap > 0 {
			flags = append(flags, s.first+s.leap)
		}
	}
	return flags, nil
}

// year builds lunar year year.
func (a *assembly) year(year int) (Year, error) {
	from, err := a.start(year)
	if err != nil {
		return Year{}, err
	}
	to, err := a.start(year + 1)
	if err != nil {
		return Year{}, err
	}
	count := to - from

	leapAt := -1
	if count == 13 {
		flags, err := a.leapFlags(year)
		if err != nil {
			return Year{}, err
		}
		for _, f := range flags {
			if f > from && f < to {
				leapAt = f - from
				break
			}
		}
		if leapAt < 0 {
			leapAt = 12
		}
	}

	moons := make([]jd.JulianDay, count+1)
	for i := range moons {
		if moons[i], err = a.c.moons.Lunation(from + i); err != nil {
			return Year{}, err
		}
	}

	y := Year{Year: year, Months: make([]Month, count), boundaries: moons}
	for i := 0; i < count; i++ {
		label, leap := i+1, false
		if leapAt > 0 && i >= leapAt {
			label = i
			leap = i == leapAt
		}
		if leap {
			y.LeapMonth = label
		}
		first := moons[i].DayNumber()
		y.Months[i] = Month{
			Year:           year,
			Month:          label,
			Leap:           leap,
			IndexInYear:    i,
			NewMoon:        moons[i],
			FirstJulianDay: jd.FromDayNumber(first),
			DayCount:       moons[i+1].DayNumber() - first,
		}
	}
	return y, nil
}
