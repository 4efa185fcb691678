package solar

import (
	"fmt"
	"time"

	"github.com/zapponejosh/lunisolar/calerr"
)

// Season is a calendar quarter: index 0 covers January through March.
type Season struct {
	year, index int
}

// NewSeason validates and returns the quarter.
func NewSeason(year, index int) (Season, error) {
	const op = "solar.NewSeason"
	if err := validateYear(op, year); err != nil {
		return Season{}, err
	}
	if err := validateIndex(op, "season", index, 4); err != nil {
		return Season{}, err
	}
	return Season{year: year, index: index}, nil
}

func (s Season) Year() int  { return s.year }
func (s Season) Index() int { return s.index }

// Next steps n quarters.
func (s Season) Next(n int) (Season, error) {
	i := s.index + n
	return NewSeason(s.year+floorDiv(i, 4), mod(i, 4))
}

// Months returns the three months of the quarter.
func (s Season) Months() []Month {
	return []Month{
		{year: s.year, month: s.index*3 + 1},
		{year: s.year, month: s.index*3 + 2},
		{year: s.year, month: s.index*3 + 3},
	}
}

func (s Season) String() string {
	return fmt.Sprintf("%04d-Q%d", s.year, s.index+1)
}

// HalfYear is index 0 (January to June) or 1 (July to December).
type HalfYear struct {
	year, index int
}

// NewHalfYear validates and returns the half year.
func NewHalfYear(year, index int) (HalfYear, error) {
	const op = "solar.NewHalfYear"
	if err := validateYear(op, year); err != nil {
		return HalfYear{}, err
	}
	if err := validateIndex(op, "half year", index, 2); err != nil {
		return HalfYear{}, err
	}
	return HalfYear{year: year, index: index}, nil
}

func (h HalfYear) Year() int  { return h.year }
func (h HalfYear) Index() int { return h.index }

// Next steps n half years.
func (h HalfYear) Next(n int) (HalfYear, error) {
	i := h.index + n
	return NewHalfYear(h.year+floorDiv(i, 2), mod(i, 2))
}

// Months returns the six months of the half year.
func (h HalfYear) Months() []Month {
	months := make([]Month, 6)
	for i := range months {
		months[i] = Month{year: h.year, month: h.index*6 + i + 1}
	}
	return months
}

// Seasons returns the two quarters of the half year.
func (h HalfYear) Seasons() []Season {
	return []Season{{year: h.year, index: h.index * 2}, {year: h.year, index: h.index*2 + 1}}
}

func (h HalfYear) String() string {
	return fmt.Sprintf("%04d-H%d", h.year, h.index+1)
}

// Week is the index-th week of a month, where weeks begin on start. Week 0 is
// the one containing the 1st and may begin in the previous month.
type Week struct {
	year, month, index int
	start              time.Weekday
}

// NewWeek validates and returns the week.
func NewWeek(year, month, index int, start time.Weekday) (Week, error) {
	const op = "solar.NewWeek"
	m, err := NewMonth(year, month)
	if err != nil {
		return Week{}, err
	}
	if start < time.Sunday || start > time.Saturday {
		return Week{}, calerr.Invalid(op, "start weekday %d", start)
	}
	if err := validateIndex(op, "week", index, m.WeekCount(start)); err != nil {
		return Week{}, err
	}
	return Week{year: year, month: month, index: index, start: start}, nil
}

func (w Week) Index() int          { return w.index }
func (w Week) Start() time.Weekday { return w.start }
func (w Week) YearMonth() Month    { return Month{year: w.year, month: w.month} }

// FirstDay returns the first day of the week, which may belong to the
// previous month.
func (w Week) FirstDay() (Day, error) {
	first := w.YearMonth().FirstDay()
	return first.Next(w.index*7 - mod(int(first.Weekday())-int(w.start), 7))
}

// Days returns the seven days of the week.
func (w Week) Days() ([]Day, error) {
	first, err := w.FirstDay()
	if err != nil {
		return nil, err
	}
	days := make([]Day, 7)
	for i := range days {
		if days[i], err = first.Next(i); err != nil {
			return nil, err
		}
	}
	return days, nil
}

// Next steps n weeks. A week shared by two months is counted once.
func (w Week) Next(n int) (Week, error) {
	d := w.index + n
	m := w.YearMonth()
	var err error
	if n > 0 {
		count := m.WeekCount(w.start)
		for d >= count {
			d -= count
			if m, err = m.Next(1); err != nil {
				return Week{}, err
			}
			if m.FirstDay().Weekday() != w.start {
				d++
			}
			count = m.WeekCount(w.start)
		}
	} else if n < 0 {
		for d < 0 {
			if m.FirstDay().Weekday() != w.start {
				d--
			}
			if m, err = m.Next(-1); err != nil {
				return Week{}, err
			}
			d += m.WeekCount(w.start)
		}
	}
	return NewWeek(m.year, m.month, d, w.start)
}

func (w Week) String() string {
	return fmt.Sprintf("%s-W%d", w.YearMonth(), w.index+1)
}
