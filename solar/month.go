package solar

import (
	"math"
	"time"
)

// Month is a validated (year, month) pair.
type Month struct {
	year, month int
}

// NewMonth validates and returns the month.
func NewMonth(year, month int) (Month, error) {
	if err := validateMonth("solar.NewMonth", year, month); err != nil {
		return Month{}, err
	}
	return Month{year: year, month: month}, nil
}

func (m Month) Year() int  { return m.year }
func (m Month) Month() int { return m.month }

// SolarYear returns the year the month belongs to.
func (m Month) SolarYear() Year { return Year{year: m.year} }

// DayCount returns the number of days that exist in the month.
func (m Month) DayCount() int {
	if m.year == 1582 && m.month == 10 {
		return 21
	}
	return lastDay(m.year, m.month)
}

// IndexInYear returns the zero-based position of the month in its year.
func (m Month) IndexInYear() int { return m.month - 1 }

// Season returns the calendar quarter containing the month.
func (m Month) Season() Season {
	return Season{year: m.year, index: m.IndexInYear() / 3}
}

// HalfYear returns the half year containing the month.
func (m Month) HalfYear() HalfYear {
	return HalfYear{year: m.year, index: m.IndexInYear() / 6}
}

// Next steps n months, rolling the year as needed.
func (m Month) Next(n int) (Month, error) {
	i := m.month - 1 + n
	return NewMonth(m.year+floorDiv(i, 12), mod(i, 12)+1)
}

// FirstDay returns the first day of the month.
func (m Month) FirstDay() Day {
	return Day{year: m.year, month: m.month, day: 1}
}

// Days lists every existing day of the month in order.
func (m Month) Days() []Day {
	days := make([]Day, 0, m.DayCount())
	for d := 1; d <= lastDay(m.year, m.month); d++ {
		if inGregorianGap(m.year, m.month, d) {
			continue
		}
		days = append(days, Day{year: m.year, month: m.month, day: d})
	}
	return days
}

// WeekCount returns how many weeks starting on start touch the month.
func (m Month) WeekCount(start time.Weekday) int {
	lead := mod(int(m.FirstDay().Weekday())-int(start), 7)
	return int(math.Ceil(float64(lead+m.DayCount()) / 7))
}

// Weeks returns the weeks of the month for the given first weekday.
func (m Month) Weeks(start time.Weekday) []Week {
	n := m.WeekCount(start)
	weeks := make([]Week, n)
	for i := range weeks {
		weeks[i] = Week{year: m.year, month: m.month, index: i, start: start}
	}
	return weeks
}

func (m Month) String() string {
	return pad(m.year, m.month)
}
