package rrule

import "time"

// civilYearDay returns the 0-based yearday of a civil (year, month, day)
// triple, using time.Date's normalization so an out-of-range day (as the
// iterator's rollover arithmetic can transiently produce) resolves the
// same way the rest of the calendar math expects.
func civilYearDay(year int, month time.Month, day int) int {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay() - 1
}

// dayset returns the yeardays comprising the current interval for the
// given frequency. The returned slice is already the exact candidate set —
// no separate [start,end) window is needed alongside it, unlike a
// sparse full-year array representation.
func dayset(m *yearMasks, r *Rule, year int, month time.Month, day int) []int {
	switch r.freq {
	case Yearly:
		out := make([]int, m.yearLen)
		for i := range out {
			out[i] = i
		}
		return out
	case Monthly:
		start, end := m.monthRange[month-1], m.monthRange[month]
		out := make([]int, end-start)
		for i := range out {
			out[i] = start + i
		}
		return out
	case Weekly:
		start := civilYearDay(year, month, day)
		wkst := r.wkst.pyIndex()
		out := make([]int, 0, 7)
		i := start
		for j := 0; j < 7; j++ {
			out = append(out, i)
			i++
			if m.weekdayMask[i] == wkst {
				break
			}
		}
		return out
	default: // Daily, Hourly, Minutely, Secondly
		return []int{civilYearDay(year, month, day)}
	}
}
