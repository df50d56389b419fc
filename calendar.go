package rrule

// Calendar tables: immutable yearday-indexed lookup arrays, each extended
// seven entries past the end of the year so the mask builder can compose
// cross-year weekly daysets without special-casing the boundary. Built
// once in init() rather than recomputed per iterator.
var (
	monthMask365       []int
	monthMask366       []int
	monthDayMask365    []int
	monthDayMask366    []int
	negMonthDayMask365 []int
	negMonthDayMask366 []int
	weekdayMaskTmpl    []int

	// monthRange365/366 are 13-entry prefix sums: monthRange[m-1] is the
	// yearday (0-based) of the first day of month m, monthRange[m] the
	// first day of month m+1. Month length is the difference.
	monthRange365 = []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	monthRange366 = []int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

func init() {
	monthMask366 = concatInt(
		repeatInt(1, 31), repeatInt(2, 29), repeatInt(3, 31),
		repeatInt(4, 30), repeatInt(5, 31), repeatInt(6, 30),
		repeatInt(7, 31), repeatInt(8, 31), repeatInt(9, 30),
		repeatInt(10, 31), repeatInt(11, 30), repeatInt(12, 31),
		repeatInt(1, 7),
	)
	monthMask365 = concatInt(monthMask366[:59], monthMask366[60:])

	d29, d30, d31 := rangeInt(1, 30), rangeInt(1, 31), rangeInt(1, 32)
	monthDayMask366 = concatInt(d31, d29, d31, d30, d31, d30, d31, d31, d30, d31, d30, d31, d31[:7])
	monthDayMask365 = concatInt(monthDayMask366[:59], monthDayMask366[60:])

	n29, n30, n31 := rangeInt(-29, 0), rangeInt(-30, 0), rangeInt(-31, 0)
	negMonthDayMask366 = concatInt(n31, n29, n31, n30, n31, n30, n31, n31, n30, n31, n30, n31, n31[:7])
	negMonthDayMask365 = concatInt(negMonthDayMask366[:31], negMonthDayMask366[32:])

	for i := 0; i < 55; i++ {
		weekdayMaskTmpl = append(weekdayMaskTmpl, 0, 1, 2, 3, 4, 5, 6)
	}
}

// monthRangeFor and friends pick the common/leap-year variant of each table.

func monthMaskFor(yearLen int) []int {
	if yearLen == 366 {
		return monthMask366
	}
	return monthMask365
}

func monthDayMaskFor(yearLen int) []int {
	if yearLen == 366 {
		return monthDayMask366
	}
	return monthDayMask365
}

func negMonthDayMaskFor(yearLen int) []int {
	if yearLen == 366 {
		return negMonthDayMask366
	}
	return negMonthDayMask365
}

func monthRangeFor(yearLen int) []int {
	if yearLen == 366 {
		return monthRange366
	}
	return monthRange365
}
