package rrule

import "time"

// Iterator pulls occurrences one at a time, in non-decreasing order,
// doing O(1) amortized work per call. It is the only mutable
// entity a Rule spawns; the Rule itself stays read-only for the iterator's
// entire lifetime.
type Iterator interface {
	// Next returns the next occurrence and true, or the zero Time and
	// false once the rule is exhausted (COUNT reached, UNTIL passed, or
	// the safety bound hit without producing anything further).
	Next() (time.Time, bool)
}

// maxCycles is the per-frequency safety bound, derived from the 28-year
// Gregorian sub-cycle: if a full pass through the main loop runs this
// many times without emitting a single occurrence, the rule is judged to
// make no further progress and iteration ends cleanly.
func maxCycles(f Frequency) int {
	switch f {
	case Yearly:
		return 28
	case Monthly:
		return 336
	case Weekly:
		return 1461
	case Daily:
		return 10227
	case Hourly:
		return 24
	case Minutely:
		return 1440
	case Secondly:
		return 86400
	}
	return 1
}

// ruleIterator is the stateful driver: (year, month, day, hour, minute,
// second) plus the per-year mask cache and the current timeset, advanced
// one interval at a time through filter.go/dayset.go/setpos.go.
type ruleIterator struct {
	rule *Rule

	year    int
	month   time.Month
	day     int
	hour    int
	minute  int
	second  int
	weekday int // pyIndex (Monday=0..Sunday=6) of the current interval's anchor day

	masks   yearMasks
	timeset []timeOfDay

	pending []time.Time
	total   int
	done    bool
}

// Iterator spawns a fresh, independently-mutable traversal over the rule.
// Any number of iterators may run concurrently against the same Rule.
func (r *Rule) Iterator() Iterator {
	it := &ruleIterator{rule: r}

	it.year, it.month, it.day = r.dtstart.Date()
	it.hour, it.minute, it.second = r.dtstart.Clock()
	it.weekday = toPyWeekday(r.dtstart.Weekday())

	if r.freq == Weekly {
		delta := pymod(it.weekday-r.wkst.pyIndex(), 7)
		if delta > 0 {
			aligned := time.Date(it.year, it.month, it.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -delta)
			it.year, it.month, it.day = aligned.Date()
		}
		it.weekday = r.wkst.pyIndex()
	}

	it.masks.rebuild(r, it.year, it.month)

	switch {
	case r.freq <= Daily:
		it.timeset = r.timesetCached
	case r.freq >= Hourly && len(r.byhour) != 0 && !containsInt(r.byhour, it.hour),
		r.freq >= Minutely && len(r.byminute) != 0 && !containsInt(r.byminute, it.minute),
		r.freq >= Secondly && len(r.bysecond) != 0 && !containsInt(r.bysecond, it.second):
		it.timeset = nil
	default:
		it.timeset = timesetFor(r, it.hour, it.minute, it.second)
	}

	return it
}

func (it *ruleIterator) Next() (time.Time, bool) {
	if len(it.pending) == 0 && !it.done {
		it.generate()
	}
	if len(it.pending) == 0 {
		return time.Time{}, false
	}
	v := it.pending[0]
	it.pending = it.pending[1:]
	return v, true
}

// generate runs the main loop until it has produced at least one pending
// occurrence, the rule terminates (COUNT/UNTIL/safety bound), or the
// frequency's MAX_CYCLES interval passes with nothing to show.
func (it *ruleIterator) generate() {
	r := it.rule
	cyclesLeft := maxCycles(r.freq)

	for len(it.pending) == 0 && cyclesLeft > 0 {
		cyclesLeft--

		if r.hasCount() && it.total >= r.count {
			it.done = true
			return
		}

		it.masks.rebuild(r, it.year, it.month)
		days := dayset(&it.masks, r, it.year, it.month, it.day)
		days = filterDayset(&it.masks, r, days)
		filtered := len(days) == 0

		if it.emit(days) {
			return
		}

		it.advance(filtered)
	}

	if len(it.pending) == 0 {
		it.done = true
	}
}

// emit walks the filtered (dayset x timeset) grid — or its BYSETPOS
// projection — in order, queuing every candidate that falls within
// [dtstart, until]. It returns true if the rule has terminated (UNTIL
// exceeded or COUNT reached) during this pass.
func (it *ruleIterator) emit(days []int) bool {
	r := it.rule

	var candidates []candidate
	if len(r.bysetpos) != 0 && len(it.timeset) != 0 {
		candidates = applySetpos(r, days, it.timeset)
	} else {
		candidates = make([]candidate, 0, len(days)*len(it.timeset))
		for _, yd := range days {
			for _, tod := range it.timeset {
				candidates = append(candidates, candidate{yearday: yd, t: tod})
			}
		}
	}

	for _, c := range candidates {
		date := it.masks.firstYDay.AddDate(0, 0, c.yearday)
		occ := time.Date(date.Year(), date.Month(), date.Day(),
			c.t.hour, c.t.minute, c.t.second, 0, r.dtstart.Location())

		if r.hasUntil() && occ.After(r.until) {
			it.done = true
			return true
		}
		if occ.Before(r.dtstart) {
			continue
		}
		it.total++
		it.pending = append(it.pending, occ)
		if r.hasCount() && it.total >= r.count {
			it.done = true
			return true
		}
	}
	return false
}

// advance moves (year, month, day, hour, minute, second) forward by one
// frequency+interval step, per the per-frequency rules of RFC 5545.
// filtered reports whether the just-emitted interval's dayset came back
// empty, which lets the sub-day frequencies skip straight to the last
// sub-day cycle instead of stepping through every filtered-out tick.
func (it *ruleIterator) advance(filtered bool) {
	r := it.rule
	fixday := false

	switch r.freq {
	case Yearly:
		it.year += r.interval

	case Monthly:
		m := int(it.month) + r.interval
		if m > 12 {
			div, mod := divmod(m, 12)
			it.month = time.Month(mod)
			it.year += div
			if it.month == 0 {
				it.month = 12
				it.year--
			}
		} else {
			it.month = time.Month(m)
		}

	case Weekly:
		wkst := r.wkst.pyIndex()
		if wkst > it.weekday {
			it.day += -(it.weekday + 1 + (6 - wkst)) + r.interval*7
		} else {
			it.day += -(it.weekday - wkst) + r.interval*7
		}
		it.weekday = wkst
		fixday = true

	case Daily:
		it.day += r.interval
		fixday = true

	case Hourly:
		if filtered {
			it.hour += ((23 - it.hour) / r.interval) * r.interval
		}
		bound := maxCycles(Hourly)
		for ; bound > 0; bound-- {
			it.hour += r.interval
			div, mod := divmod(it.hour, 24)
			if div != 0 {
				it.hour = mod
				it.day += div
				fixday = true
			}
			if len(r.byhour) == 0 || containsInt(r.byhour, it.hour) {
				break
			}
		}
		it.timeset = timesetFor(r, it.hour, it.minute, it.second)

	case Minutely:
		if filtered {
			it.minute += ((1439 - (it.hour*60 + it.minute)) / r.interval) * r.interval
		}
		bound := maxCycles(Minutely)
		for ; bound > 0; bound-- {
			it.minute += r.interval
			div, mod := divmod(it.minute, 60)
			if div != 0 {
				it.minute = mod
				it.hour += div
				div, mod = divmod(it.hour, 24)
				if div != 0 {
					it.hour = mod
					it.day += div
					fixday = true
					filtered = false
				}
			}
			if (len(r.byhour) == 0 || containsInt(r.byhour, it.hour)) &&
				(len(r.byminute) == 0 || containsInt(r.byminute, it.minute)) {
				break
			}
		}
		it.timeset = timesetFor(r, it.hour, it.minute, it.second)

	case Secondly:
		if filtered {
			it.second += (((86399 - (it.hour*3600 + it.minute*60 + it.second)) / r.interval) * r.interval)
		}
		bound := maxCycles(Secondly)
		for ; bound > 0; bound-- {
			it.second += r.interval
			div, mod := divmod(it.second, 60)
			if div != 0 {
				it.second = mod
				it.minute += div
				div, mod = divmod(it.minute, 60)
				if div != 0 {
					it.minute = mod
					it.hour += div
					div, mod = divmod(it.hour, 24)
					if div != 0 {
						it.hour = mod
						it.day += div
						fixday = true
					}
				}
			}
			if (len(r.byhour) == 0 || containsInt(r.byhour, it.hour)) &&
				(len(r.byminute) == 0 || containsInt(r.byminute, it.minute)) &&
				(len(r.bysecond) == 0 || containsInt(r.bysecond, it.second)) {
				break
			}
		}
		it.timeset = timesetFor(r, it.hour, it.minute, it.second)
	}

	if fixday && it.day > 28 {
		dim := daysInMonth(int(it.month), it.year)
		if it.day > dim {
			for it.day > dim {
				it.day -= dim
				it.month++
				if it.month == 13 {
					it.month = 1
					it.year++
				}
				dim = daysInMonth(int(it.month), it.year)
			}
			it.masks.rebuild(r, it.year, it.month)
		}
	}
}
