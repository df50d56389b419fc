package rrule

// filterDayset applies the six-step BY-filter cascade to a candidate
// dayset, in order, discarding a yearday on first failure: BYMONTH,
// BYWEEKNO, BYYEARDAY, BYMONTHDAY, BYDAY (plain), then BYDAY (nth).
func filterDayset(m *yearMasks, r *Rule, days []int) []int {
	out := days[:0:0] // fresh backing array; days itself isn't reused after this call
	for _, yd := range days {
		if !passesFilters(m, r, yd) {
			continue
		}
		out = append(out, yd)
	}
	return out
}

func passesFilters(m *yearMasks, r *Rule, yd int) bool {
	if len(r.bymonth) != 0 && !containsInt(r.bymonth, m.monthMask[yd]) {
		return false
	}
	if len(r.byweekno) != 0 && m.weeknoMask[yd] == 0 {
		return false
	}
	if len(r.byyearday) != 0 && !passesByYearDay(m, r, yd) {
		return false
	}
	if (len(r.bymonthday) != 0 || len(r.bymonthdayNegative) != 0) &&
		!containsInt(r.bymonthday, m.monthDayMask[yd]) &&
		!containsInt(r.bymonthdayNegative, m.negMonthDayMask[yd]) {
		return false
	}
	if len(r.byweekday) != 0 {
		wd := weekdayFromPyIndex(m.weekdayMask[yd])
		found := false
		for _, w := range r.byweekday {
			if w == wd {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(m.nthWeekdayMask) != 0 && m.nthWeekdayMask[yd] == 0 {
		return false
	}
	return true
}

// passesByYearDay resolves the BYYEARDAY overhang case: for a yearday past
// the end of the current year (the 7-day next-year lookahead the calendar
// tables carry), a negative BYYEARDAY value counts from the end of *next*
// year, not the current one — see DESIGN.md.
func passesByYearDay(m *yearMasks, r *Rule, yd int) bool {
	if yd < m.yearLen {
		return containsInt(r.byyearday, yd+1) || containsInt(r.byyearday, yd-m.yearLen)
	}
	return containsInt(r.byyearday, yd+1-m.yearLen) ||
		containsInt(r.byyearday, yd-m.yearLen-m.nextYearLen)
}
