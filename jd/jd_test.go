package jd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCalendar(t *testing.T) {
	tests := []struct {
		name                             string
		year, month, day, hour, min, sec int
		want                             JulianDay
	}{
		{"J2000", 2000, 1, 1, 12, 0, 0, 2451545.0},
		{"sputnik", 1957, 10, 4, 19, 26, 24, 2436116.31},
		{"julian calendar 333", 333, 1, 27, 12, 0, 0, 1842713.0},
		{"last julian day", 1582, 10, 4, 0, 0, 0, 2299159.5},
		{"first gregorian day", 1582, 10, 15, 0, 0, 0, 2299160.5},
		{"year one", 1, 1, 1, 0, 0, 0, 1721423.5},
		{"far future", 9999, 12, 31, 0, 0, 0, 5373483.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromCalendar(tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec)
			assert.InDelta(t, float64(tt.want), float64(got), 1e-6)
		})
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	tests := []struct {
		year, month, day, hour, min, sec int
	}{
		{1, 1, 1, 0, 0, 0},
		{4, 2, 29, 23, 59, 59},
		{1582, 10, 4, 12, 30, 0},
		{1582, 10, 15, 0, 0, 1},
		{1900, 2, 28, 6, 7, 8},
		{2000, 2, 29, 18, 0, 0},
		{2024, 2, 4, 16, 26, 53},
		{9999, 12, 31, 23, 59, 59},
	}

	for _, tt := range tests {
		j := FromCalendar(tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec)
		y, m, d, h, mi, s := j.Calendar()
		assert.Equal(t,
			[]int{tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec},
			[]int{y, m, d, h, mi, s},
			"round trip of %v", tt)
	}
}

func TestGregorianGapIsOneDay(t *testing.T) {
	before := FromCalendar(1582, 10, 4, 0, 0, 0)
	after := FromCalendar(1582, 10, 15, 0, 0, 0)
	assert.Equal(t, 1.0, after.Sub(before))

	y, m, d := before.Add(1).Date()
	assert.Equal(t, []int{1582, 10, 15}, []int{y, m, d})
}

func TestCalendarCarriesRoundedMidnight(t *testing.T) {
	// 0.4 ms before midnight rounds up to the next day.
	j := FromCalendar(2023, 12, 31, 0, 0, 0).Add(1 - 0.0004/SecondsPerDay)
	y, m, d, h, mi, s := j.Calendar()
	require.Equal(t, []int{2024, 1, 1, 0, 0, 0}, []int{y, m, d, h, mi, s})
}

func TestDayNumberAndWeekday(t *testing.T) {
	j := FromCalendar(2000, 1, 1, 0, 0, 0)
	assert.Equal(t, 2451545, j.DayNumber())
	assert.Equal(t, 2451545, FromCalendar(2000, 1, 1, 23, 59, 59).DayNumber())
	assert.Equal(t, time.Saturday, j.Weekday())
	assert.Equal(t, time.Thursday, FromCalendar(1582, 10, 4, 0, 0, 0).Weekday())
	assert.Equal(t, time.Friday, FromCalendar(1582, 10, 15, 0, 0, 0).Weekday())
	assert.Equal(t, j, FromDayNumber(2451545))
}

func TestMonotonic(t *testing.T) {
	prev := FromCalendar(1, 1, 1, 0, 0, 0)
	end := prev.DayNumber() + 800000
	steps := 0
	for n := prev.DayNumber() + 1; n < end; n += 997 {
		y, m, d := FromDayNumber(n).Date()
		cur := FromCalendar(y, m, d, 0, 0, 0)
		require.True(t, prev.Before(cur), "day %d", n)
		require.Equal(t, n, cur.DayNumber())
		prev = cur
		steps++
	}
	assert.Equal(t, 803, steps)
}

func TestCenturies(t *testing.T) {
	assert.Equal(t, 0.0, JulianDay(J2000).Centuries())
	assert.InDelta(t, 1.0, JulianDay(J2000+36525).Centuries(), 1e-12)
}
