package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/lunisolar/calerr"
)

func mustDay(t *testing.T, y, m, d int) Day {
	t.Helper()
	day, err := NewDay(y, m, d)
	require.NoError(t, err)
	return day
}

func mustTime(t *testing.T, y, mo, d, h, mi, s int) Time {
	t.Helper()
	tm, err := NewTime(y, mo, d, h, mi, s)
	require.NoError(t, err)
	return tm
}

func TestNewDayValidation(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr bool
	}{
		{"ordinary day", 2024, 2, 4, false},
		{"gregorian leap day", 2000, 2, 29, false},
		{"julian leap day in 1500", 1500, 2, 29, false},
		{"1900 is not leap", 1900, 2, 29, true},
		{"last day before reform", 1582, 10, 4, false},
		{"first day after reform", 1582, 10, 15, false},
		{"dropped day 5", 1582, 10, 5, true},
		{"dropped day 14", 1582, 10, 14, true},
		{"october 31 of 1582 exists", 1582, 10, 31, false},
		{"year zero", 0, 1, 1, true},
		{"year 10000", 10000, 1, 1, true},
		{"month 13", 2024, 13, 1, true},
		{"month 0", 2024, 0, 1, true},
		{"day 0", 2024, 1, 0, true},
		{"april 31", 2024, 4, 31, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDay(tt.y, tt.m, tt.d)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, calerr.IsInvalid(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewTimeValidation(t *testing.T) {
	_, err := NewTime(2024, 6, 1, 24, 0, 0)
	assert.True(t, calerr.IsInvalid(err))
	_, err = NewTime(2024, 6, 1, 23, 60, 0)
	assert.True(t, calerr.IsInvalid(err))
	_, err = NewTime(2024, 6, 1, 23, 59, -1)
	assert.True(t, calerr.IsInvalid(err))
	_, err = NewTime(1582, 10, 10, 12, 0, 0)
	assert.True(t, calerr.IsInvalid(err))
}

func TestReformGapStepping(t *testing.T) {
	before := mustDay(t, 1582, 10, 4)
	after := mustDay(t, 1582, 10, 15)

	next, err := before.Next(1)
	require.NoError(t, err)
	assert.Equal(t, after, next)

	prev, err := after.Next(-1)
	require.NoError(t, err)
	assert.Equal(t, before, prev)

	assert.Equal(t, 1, after.Subtract(before))
	assert.True(t, before.Before(after))
	assert.True(t, after.After(before))
	assert.Equal(t, time.Thursday, before.Weekday())
	assert.Equal(t, time.Friday, after.Weekday())

	tm := mustTime(t, 1582, 10, 4, 23, 59, 59)
	tick, err := tm.Next(1)
	require.NoError(t, err)
	assert.Equal(t, "1582-10-15 00:00:00", tick.String())
}

func TestReformYearAndMonthLengths(t *testing.T) {
	y, err := NewYear(1582)
	require.NoError(t, err)
	assert.Equal(t, 355, y.DayCount())

	m, err := NewMonth(1582, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, m.DayCount())
	days := m.Days()
	require.Len(t, days, 21)
	assert.Equal(t, "1582-10-04", days[3].String())
	assert.Equal(t, "1582-10-15", days[4].String())

	assert.Equal(t, 354, mustDay(t, 1582, 12, 31).IndexInYear())
	assert.Equal(t, 365, mustDay(t, 2024, 12, 31).IndexInYear())
	assert.Equal(t, 0, mustDay(t, 2024, 1, 1).IndexInYear())
}

func TestYearDayCounts(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{4, 366},
		{1500, 366},
		{1600, 366},
		{1700, 365},
		{2000, 366},
		{2023, 365},
		{2024, 366},
	}
	for _, tt := range tests {
		y, err := NewYear(tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.want, y.DayCount(), "year %d", tt.year)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	inputs := []Time{
		mustTime(t, 1, 1, 1, 0, 0, 0),
		mustTime(t, 333, 1, 27, 12, 0, 0),
		mustTime(t, 1582, 10, 4, 23, 59, 59),
		mustTime(t, 1582, 10, 15, 0, 0, 0),
		mustTime(t, 2024, 2, 4, 16, 26, 53),
		mustTime(t, 9999, 12, 31, 23, 59, 59),
	}
	for _, in := range inputs {
		got, err := TimeFromJulianDay(in.JulianDay())
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestTimeFromJulianDayOutOfRange(t *testing.T) {
	_, err := TimeFromJulianDay(0)
	assert.True(t, calerr.IsInvalid(err))

	last := mustTime(t, 9999, 12, 31, 23, 59, 59)
	_, err = last.Next(1)
	assert.True(t, calerr.IsInvalid(err))
}

func TestTimeArithmetic(t *testing.T) {
	a := mustTime(t, 2024, 6, 1, 23, 30, 0)
	b, err := a.Next(3600)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02 00:30:00", b.String())
	assert.Equal(t, 3600, b.Subtract(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))

	c, err := b.Next(-2 * 86400)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-31 00:30:00", c.String())
}

func TestMonthNext(t *testing.T) {
	m, err := NewMonth(2024, 11)
	require.NoError(t, err)

	next, err := m.Next(3)
	require.NoError(t, err)
	assert.Equal(t, "2025-02", next.String())

	prev, err := m.Next(-23)
	require.NoError(t, err)
	assert.Equal(t, "2022-12", prev.String())

	first, err := NewMonth(1, 1)
	require.NoError(t, err)
	_, err = first.Next(-1)
	assert.True(t, calerr.IsInvalid(err))
}

func TestSeasonsAndHalfYears(t *testing.T) {
	m, err := NewMonth(2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Season().Index())
	assert.Equal(t, 0, m.HalfYear().Index())

	q1, err := NewSeason(2024, 0)
	require.NoError(t, err)
	q4, err := q1.Next(-1)
	require.NoError(t, err)
	assert.Equal(t, "2023-Q4", q4.String())
	assert.Equal(t, 10, q4.Months()[0].Month())

	h2, err := NewHalfYear(2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, h2.Months()[0].Month())
	assert.Equal(t, 3, h2.Seasons()[1].Index())

	_, err = NewSeason(2024, 4)
	assert.True(t, calerr.IsInvalid(err))
}

func TestWeeks(t *testing.T) {
	feb, err := NewMonth(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, feb.WeekCount(time.Monday))

	w := mustDay(t, 2024, 2, 5).Week(time.Monday)
	assert.Equal(t, 1, w.Index())
	first, err := w.FirstDay()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", first.String())

	// 2024-01 starts on a Monday; its last week runs into February and is
	// not counted twice.
	lastJan, err := NewWeek(2024, 1, 4, time.Monday)
	require.NoError(t, err)
	next, err := lastJan.Next(1)
	require.NoError(t, err)
	first, err = next.FirstDay()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", first.String())

	firstFeb, err := NewWeek(2024, 2, 0, time.Monday)
	require.NoError(t, err)
	prev, err := firstFeb.Next(-1)
	require.NoError(t, err)
	first, err = prev.FirstDay()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-22", first.String())

	days, err := firstFeb.Days()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-29", days[0].String())
	assert.Equal(t, "2024-02-04", days[6].String())

	_, err = NewWeek(2024, 2, 5, time.Monday)
	assert.True(t, calerr.IsInvalid(err))
}

func TestParse(t *testing.T) {
	d, err := ParseDay("2023-01-22")
	require.NoError(t, err)
	assert.Equal(t, mustDay(t, 2023, 1, 22), d)

	_, err = ParseDay("2023/01/22")
	assert.True(t, calerr.IsInvalid(err))
	_, err = ParseDay("1582-10-10")
	assert.True(t, calerr.IsInvalid(err))

	tm, err := ParseTime("2024-06-01 23:30:00")
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, 2024, 6, 1, 23, 30, 0), tm)

	tm, err = ParseTime("2024-06-01 23:30")
	require.NoError(t, err)
	assert.Equal(t, 0, tm.Second())

	_, err = ParseTime("2024-06-01")
	assert.True(t, calerr.IsInvalid(err))
}
