package rrule

import "time"

// yearMasks is the per-iterator mask cache: it is rebuilt whenever the
// iterator's (year, month) position moves into a year or month it hasn't
// seen yet.
type yearMasks struct {
	lastYear  int
	lastMonth time.Month

	yearLen     int
	nextYearLen int
	firstYDay   time.Time
	yearWeekday int // pyIndex of Jan 1st

	monthMask       []int
	monthRange      []int
	monthDayMask    []int
	negMonthDayMask []int
	weekdayMask     []int // sliced from weekdayMaskTmpl, offset by yearWeekday

	weeknoMask     []int // nil unless byweekno present
	nthWeekdayMask []int // nil unless byweekday_nth present
}

// rebuild recomputes whatever part of the cache has gone stale for the
// given (year, month) position. Safe to call on every interval advance;
// it is a cheap no-op when nothing changed.
func (m *yearMasks) rebuild(r *Rule, year int, month time.Month) {
	if year != m.lastYear {
		m.yearLen = yearLength(year)
		m.nextYearLen = yearLength(year + 1)
		m.firstYDay = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		m.yearWeekday = toPyWeekday(m.firstYDay.Weekday())
		m.weekdayMask = weekdayMaskTmpl[m.yearWeekday:]
		m.monthMask = monthMaskFor(m.yearLen)
		m.monthDayMask = monthDayMaskFor(m.yearLen)
		m.negMonthDayMask = negMonthDayMaskFor(m.yearLen)
		m.monthRange = monthRangeFor(m.yearLen)

		if len(r.byweekno) == 0 {
			m.weeknoMask = nil
		} else {
			m.buildWeeknoMask(r, year)
		}
	}

	if len(r.byweekdayNth) != 0 && (month != m.lastMonth || year != m.lastYear) {
		m.buildNthWeekdayMask(r, month)
	}

	m.lastYear = year
	m.lastMonth = month
}

// buildWeeknoMask implements the ISO-8601 week-number mask construction of
// RFC 5545, including the cross-year week-1/last-week carry rules.
func (m *yearMasks) buildWeeknoMask(r *Rule, year int) {
	wkst := r.wkst.pyIndex()
	m.weeknoMask = make([]int, m.yearLen+7)

	firstWkst := pymod(7-m.yearWeekday+wkst, 7)
	no1wkst := firstWkst
	var wyearlen int
	if no1wkst >= 4 {
		no1wkst = 0
		wyearlen = m.yearLen + pymod(m.yearWeekday-wkst, 7)
	} else {
		wyearlen = m.yearLen - no1wkst
	}
	div, mod := divmod(wyearlen, 7)
	numweeks := div + mod/4

	for _, n := range r.byweekno {
		if n < 0 {
			n += numweeks + 1
		}
		if !(0 < n && n <= numweeks) {
			continue
		}
		var i int
		if n > 1 {
			i = no1wkst + (n-1)*7
			if no1wkst != firstWkst {
				i -= 7 - firstWkst
			}
		} else {
			i = no1wkst
		}
		for j := 0; j < 7; j++ {
			m.weeknoMask[i] = 1
			i++
			if m.weekdayMask[i] == wkst {
				break
			}
		}
	}

	if containsInt(r.byweekno, 1) {
		i := no1wkst + numweeks*7
		if no1wkst != firstWkst {
			i -= 7 - firstWkst
		}
		if i < m.yearLen {
			for j := 0; j < 7; j++ {
				m.weeknoMask[i] = 1
				i++
				if m.weekdayMask[i] == wkst {
					break
				}
			}
		}
	}

	if no1wkst != 0 {
		var lnumweeks int
		if !containsInt(r.byweekno, -1) {
			lyearWeekday := toPyWeekday(time.Date(year-1, 1, 1, 0, 0, 0, 0, time.UTC).Weekday())
			lno1wkst := pymod(7-lyearWeekday+wkst, 7)
			lyearlen := yearLength(year - 1)
			if lno1wkst >= 4 {
				lnumweeks = 52 + pymod(lyearlen+pymod(lyearWeekday-wkst, 7), 7)/4
			} else {
				lnumweeks = 52 + pymod(m.yearLen-no1wkst, 7)/4
			}
		} else {
			lnumweeks = -1
		}
		if containsInt(r.byweekno, lnumweeks) {
			for i := 0; i < no1wkst; i++ {
				m.weeknoMask[i] = 1
			}
		}
	}
}

// buildNthWeekdayMask implements the nth-weekday mask of RFC 5545 for
// BYDAY entries with a numeric prefix: one range per BYMONTH value when
// freq is Yearly with BYMONTH set, the whole year when Yearly without
// BYMONTH, or just the current month when freq is Monthly.
func (m *yearMasks) buildNthWeekdayMask(r *Rule, month time.Month) {
	var ranges [][2]int
	switch r.freq {
	case Yearly:
		if len(r.bymonth) != 0 {
			for _, mo := range r.bymonth {
				ranges = append(ranges, [2]int{m.monthRange[mo-1], m.monthRange[mo]})
			}
		} else {
			ranges = [][2]int{{0, m.yearLen}}
		}
	case Monthly:
		ranges = [][2]int{{m.monthRange[int(month)-1], m.monthRange[int(month)]}}
	}
	if len(ranges) == 0 {
		m.nthWeekdayMask = nil
		return
	}

	m.nthWeekdayMask = make([]int, m.yearLen)
	for _, rg := range ranges {
		first, last := rg[0], rg[1]-1
		for _, y := range r.byweekdayNth {
			wday, n := y.Weekday.pyIndex(), y.N
			var i int
			if n < 0 {
				i = last + (n+1)*7
				i -= pymod(m.weekdayMask[i]-wday, 7)
			} else {
				i = first + (n-1)*7
				i += pymod(7-m.weekdayMask[i]+wday, 7)
			}
			if first <= i && i <= last {
				m.nthWeekdayMask[i] = 1
			}
		}
	}
}
