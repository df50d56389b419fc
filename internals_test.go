package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivmodFloorsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		a, b     int
		wantDiv  int
		wantMod  int
	}{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		div, mod := divmod(c.a, c.b)
		assert.Equal(t, c.wantDiv, div, "divmod(%d,%d) div", c.a, c.b)
		assert.Equal(t, c.wantMod, mod, "divmod(%d,%d) mod", c.a, c.b)
	}
}

func TestPymodAlwaysNonNegative(t *testing.T) {
	assert.Equal(t, 2, pymod(-5, 7))
	assert.Equal(t, 0, pymod(0, 7))
	assert.Equal(t, 5, pymod(5, 7))
	assert.Equal(t, 6, pymod(-1, 7))
}

func TestToPyWeekday(t *testing.T) {
	// 1997-09-02 is a Tuesday.
	tue := time.Date(1997, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, toPyWeekday(tue.Weekday()))
	sun := time.Date(1997, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, toPyWeekday(sun.Weekday()))
	mon := time.Date(1997, 9, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, toPyWeekday(mon.Weekday()))
}

func TestWeekdayFromPyIndexRoundTrip(t *testing.T) {
	for i := 0; i < 7; i++ {
		wd := weekdayFromPyIndex(i)
		assert.Equal(t, i, wd.pyIndex())
	}
}

func TestParseByDay(t *testing.T) {
	cases := []struct {
		token   string
		wantWd  Weekday
		wantN   int
		wantErr bool
	}{
		{"MO", Monday, 0, false},
		{"1MO", Monday, 1, false},
		{"+1MO", Monday, 1, false},
		{"-1FR", Friday, -1, false},
		{"53TU", Tuesday, 53, false},
		{"0MO", Weekday(0), 0, true},
		{"54MO", Weekday(0), 0, true},
		{"MONDAY", Weekday(0), 0, true},
		{"", Weekday(0), 0, true},
	}
	for _, c := range cases {
		got, err := parseByDay(c.token)
		if c.wantErr {
			assert.Error(t, err, c.token)
			continue
		}
		require.NoError(t, err, c.token)
		assert.Equal(t, c.wantWd, got.Weekday, c.token)
		assert.Equal(t, c.wantN, got.N, c.token)
	}
}

func TestYearLength(t *testing.T) {
	assert.Equal(t, 366, yearLength(2000)) // divisible by 400
	assert.Equal(t, 365, yearLength(1900)) // divisible by 100, not 400
	assert.Equal(t, 366, yearLength(1996)) // divisible by 4
	assert.Equal(t, 365, yearLength(1997))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daysInMonth(1, 1997))
	assert.Equal(t, 28, daysInMonth(2, 1997))
	assert.Equal(t, 29, daysInMonth(2, 1996))
	assert.Equal(t, 30, daysInMonth(4, 1997))
}

func TestCalendarTablesMatchKnownYeardays(t *testing.T) {
	// Yearday 0 is always Jan 1st in every table.
	assert.Equal(t, 1, monthMask365[0])
	assert.Equal(t, 1, monthMask366[0])
	assert.Equal(t, 1, monthDayMask365[0])
	assert.Equal(t, 1, monthDayMask366[0])

	// Yearday 58 (0-based) is Feb 28 in a non-leap year; yearday 59 is Feb 29 in a leap year.
	assert.Equal(t, 2, monthMask365[58])
	assert.Equal(t, 28, monthDayMask365[58])
	assert.Equal(t, 2, monthMask366[59])
	assert.Equal(t, 29, monthDayMask366[59])

	// Negative monthday masks count backward from the end of the month.
	assert.Equal(t, -31, negMonthDayMask365[0])  // Jan 1st, 31-day month
	assert.Equal(t, -1, negMonthDayMask365[30])  // Jan 31st
	assert.Equal(t, -28, negMonthDayMask365[31]) // Feb 1st, 28-day month
}

func TestMonthRangePrefixSums(t *testing.T) {
	assert.Equal(t, 365, monthRange365[12])
	assert.Equal(t, 366, monthRange366[12])
	for m := 1; m <= 12; m++ {
		assert.True(t, monthRange365[m] > monthRange365[m-1])
	}
}

func TestBuildTimesetCartesianProductSorted(t *testing.T) {
	got := buildTimeset([]int{10, 9}, []int{0, 30}, []int{0})
	want := []timeOfDay{
		{hour: 9, minute: 0, second: 0},
		{hour: 9, minute: 30, second: 0},
		{hour: 10, minute: 0, second: 0},
		{hour: 10, minute: 30, second: 0},
	}
	assert.Equal(t, want, got)
}

func TestApplySetposPositiveAndNegativeIndices(t *testing.T) {
	days := []int{0, 1, 2}
	timeset := []timeOfDay{{hour: 9}}
	r := &Rule{bysetpos: []int{1, -1, 100}}
	got := applySetpos(r, days, timeset)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].yearday)
	assert.Equal(t, 2, got[1].yearday)
}

func TestApplySetposDedups(t *testing.T) {
	days := []int{5}
	timeset := []timeOfDay{{hour: 9}}
	r := &Rule{bysetpos: []int{1, -1}}
	got := applySetpos(r, days, timeset)
	assert.Len(t, got, 1)
}

func TestDaysetYearly(t *testing.T) {
	var m yearMasks
	r := &Rule{freq: Yearly}
	m.rebuild(r, 1997, time.January)
	days := dayset(&m, r, 1997, time.January, 1)
	assert.Len(t, days, 365)
	assert.Equal(t, 0, days[0])
	assert.Equal(t, 364, days[364])
}

func TestDaysetMonthly(t *testing.T) {
	var m yearMasks
	r := &Rule{freq: Monthly}
	m.rebuild(r, 1997, time.February)
	days := dayset(&m, r, 1997, time.February, 1)
	assert.Len(t, days, 28) // 1997 is not a leap year
	assert.Equal(t, monthRange365[1], days[0])
}

func TestFilterDaysetByMonth(t *testing.T) {
	var m yearMasks
	r := &Rule{freq: Yearly, bymonth: []int{2}}
	m.rebuild(r, 1997, time.January)
	days := dayset(&m, r, 1997, time.January, 1)
	filtered := filterDayset(&m, r, days)
	assert.Len(t, filtered, 28)
	for _, yd := range filtered {
		assert.Equal(t, 2, m.monthMask[yd])
	}
}

func TestBuildWeeknoMaskWeek20MatchesScenario(t *testing.T) {
	var m yearMasks
	r := &Rule{freq: Yearly, wkst: Monday, byweekno: []int{20}, byweekday: []Weekday{Monday}}
	m.rebuild(r, 1997, time.January)
	days := dayset(&m, r, 1997, time.January, 1)
	filtered := filterDayset(&m, r, days)
	require.Len(t, filtered, 1)
	got := time.Date(1997, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, filtered[0])
	assert.Equal(t, time.Date(1997, 5, 12, 0, 0, 0, 0, time.UTC), got)
}
