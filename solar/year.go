package solar

import "strconv"

// Year is a validated solar calendar year in 1..9999.
type Year struct {
	year int
}

// NewYear validates and returns the year.
func NewYear(year int) (Year, error) {
	if err := validateYear("solar.NewYear", year); err != nil {
		return Year{}, err
	}
	return Year{year: year}, nil
}

// Year returns the year number.
func (y Year) Year() int { return y.year }

// IsLeap reports whether the year has a February 29th.
func (y Year) IsLeap() bool { return IsLeapYear(y.year) }

// DayCount returns the number of days in the year. 1582 lost ten days to the
// calendar reform and has 355.
func (y Year) DayCount() int {
	if y.year == 1582 {
		return 355
	}
	if y.IsLeap() {
		return 366
	}
	return 365
}

// Next returns the year n years later (or earlier for negative n).
func (y Year) Next(n int) (Year, error) {
	return NewYear(y.year + n)
}

// Months returns the twelve months of the year.
func (y Year) Months() []Month {
	months := make([]Month, 12)
	for i := range months {
		months[i] = Month{year: y.year, month: i + 1}
	}
	return months
}

// Seasons returns the four quarters of the year.
func (y Year) Seasons() []Season {
	seasons := make([]Season, 4)
	for i := range seasons {
		seasons[i] = Season{year: y.year, index: i}
	}
	return seasons
}

// HalfYears returns the two halves of the year.
func (y Year) HalfYears() []HalfYear {
	return []HalfYear{{year: y.year, index: 0}, {year: y.year, index: 1}}
}

func (y Year) String() string {
	return strconv.Itoa(y.year)
}
