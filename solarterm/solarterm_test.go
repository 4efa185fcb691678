package solarterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/lunisolar/calerr"
	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
	"github.com/zapponejosh/lunisolar/solar"
)

func newLocator() *Locator {
	return New(ephemeris.NewSolver(ephemeris.Options{Cache: ephemeris.NewMemoryCache()}))
}

func dayOf(t *testing.T, term Term) string {
	t.Helper()
	d, err := term.Day()
	require.NoError(t, err)
	return d.String()
}

func TestTermDates(t *testing.T) {
	l := newLocator()

	tests := []struct {
		name        string
		year, index int
		want        string
	}{
		{"winter solstice opens 2024", 2024, 0, "2023-12-22"},
		{"great cold", 2024, 2, "2024-01-20"},
		{"start of spring", 2024, 3, "2024-02-04"},
		{"spring equinox", 2023, 6, "2023-03-21"},
		{"summer solstice", 2024, 12, "2024-06-21"},
		{"grain in ear", 2024, 11, "2024-06-05"},
		{"december solstice", 2025, 0, "2024-12-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := l.Term(tt.year, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dayOf(t, term))
			assert.Equal(t, tt.index%2 == 1, term.IsJie())
			assert.Equal(t, tt.index%2 == 0, term.IsQi())
		})
	}
}

func TestTermValidation(t *testing.T) {
	l := newLocator()

	_, err := l.Term(0, 3)
	assert.True(t, calerr.IsInvalid(err))
	_, err = l.Term(10000, 0)
	assert.True(t, calerr.IsInvalid(err))
	_, err = l.Term(2024, 24)
	assert.True(t, calerr.IsInvalid(err))
	_, err = l.Term(2024, -1)
	assert.True(t, calerr.IsInvalid(err))
}

func TestTermOrdering(t *testing.T) {
	l := newLocator()

	for _, year := range []int{1, 1000, 1582, 2024, 5000, 9999} {
		terms, err := l.Year(year)
		require.NoError(t, err)
		for i := 1; i < Count; i++ {
			require.True(t, terms[i-1].JulianDay.Before(terms[i].JulianDay), "year %d index %d", year, i)
			gap := terms[i].JulianDay.Sub(terms[i-1].JulianDay)
			assert.InDelta(t, 15.2, gap, 0.8, "year %d index %d", year, i)
		}

		next, err := l.Instant(year+1, 0)
		require.NoError(t, err)
		assert.True(t, terms[Count-1].JulianDay.Before(next))
		assert.InDelta(t, 365.2422, next.Sub(terms[0].JulianDay), 0.02, "year %d", year)
	}
}

func TestNextRollsYear(t *testing.T) {
	l := newLocator()

	last, err := l.Term(2024, 23)
	require.NoError(t, err)
	first, err := l.Next(last, 1)
	require.NoError(t, err)
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 0, first.Index)

	back, err := l.Next(first, -25)
	require.NoError(t, err)
	assert.Equal(t, 2023, back.Year)
	assert.Equal(t, 23, back.Index)

	y, i := Shift(2024, 0, -1)
	assert.Equal(t, []int{2023, 23}, []int{y, i})
	y, i = Shift(2024, 23, 49)
	assert.Equal(t, []int{2027, 0}, []int{y, i})
	y, i = Shift(2024, 23, 25)
	assert.Equal(t, []int{2026, 0}, []int{y, i})
	y, i = Shift(2024, 0, -48)
	assert.Equal(t, []int{2022, 0}, []int{y, i})
}

func TestLongitude(t *testing.T) {
	assert.Equal(t, 270.0, Longitude(0))
	assert.Equal(t, 315.0, Longitude(3))
	assert.Equal(t, 0.0, Longitude(6))
	assert.Equal(t, 255.0, Longitude(23))
}

func TestName(t *testing.T) {
	assert.Equal(t, "dongzhi", Name(0))
	assert.Equal(t, "lichun", Term{Year: 2024, Index: StartOfSpring}.Name())
	assert.Equal(t, "daxue", Name(23))
	assert.Equal(t, "unknown", Name(24))
}

func TestContaining(t *testing.T) {
	l := newLocator()

	tests := []struct {
		name        string
		at          jd.JulianDay
		year, index int
	}{
		{"just before start of spring", jd.FromCalendar(2024, 2, 4, 16, 0, 0), 2024, 2},
		{"just after start of spring", jd.FromCalendar(2024, 2, 4, 17, 0, 0), 2024, 3},
		{"after the december solstice", jd.FromCalendar(2023, 12, 25, 0, 0, 0), 2024, 0},
		{"before the december solstice", jd.FromCalendar(2023, 12, 21, 12, 0, 0), 2023, 23},
		{"midsummer", jd.FromCalendar(2024, 7, 1, 0, 0, 0), 2024, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := l.Containing(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.year, term.Year)
			assert.Equal(t, tt.index, term.Index)
			assert.False(t, term.JulianDay > tt.at)
		})
	}
}

func TestContainingDay(t *testing.T) {
	l := newLocator()

	tests := []struct {
		y, m, d     int
		year, index int
		dayIndex    int
	}{
		{2024, 2, 4, 2024, 3, 0},
		{2024, 2, 3, 2024, 2, 14},
		{2023, 12, 31, 2024, 0, 9},
		{2024, 1, 1, 2024, 0, 10},
	}

	for _, tt := range tests {
		day, err := solar.NewDay(tt.y, tt.m, tt.d)
		require.NoError(t, err)
		term, idx, err := l.ContainingDay(day)
		require.NoError(t, err)
		assert.Equal(t, []int{tt.year, tt.index, tt.dayIndex}, []int{term.Year, term.Index, idx}, "day %s", day)
	}
}

func TestSeasonBoundaries(t *testing.T) {
	l := newLocator()

	solstice, err := l.Season(2024, SummerSolstice)
	require.NoError(t, err)
	assert.Equal(t, 12, solstice.Index)
	assert.Equal(t, "2024-06-21", dayOf(t, solstice))

	winter, err := l.Season(2023, WinterSolstice)
	require.NoError(t, err)
	assert.Equal(t, 2024, winter.Year)
	assert.Equal(t, 0, winter.Index)
	assert.Equal(t, "2023-12-22", dayOf(t, winter))

	spring, err := l.Season(2024, StartOfSpringBoundary)
	require.NoError(t, err)
	assert.Equal(t, StartOfSpring, spring.Index)

	last, err := l.Season(9999, WinterSolstice)
	require.NoError(t, err)
	assert.Equal(t, 10000, last.Year)

	_, err = l.Season(2024, Boundary(8))
	assert.True(t, calerr.IsInvalid(err))
	assert.Equal(t, "autumn equinox", AutumnEquinox.String())
}
