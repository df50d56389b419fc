package rrule

import "sort"

// buildTimeset computes the lexicographic cartesian product of
// byhour x byminute x bysecond, used as Rule.timesetCached for freq <=
// Daily.
func buildTimeset(hours, minutes, seconds []int) []timeOfDay {
	out := make([]timeOfDay, 0, len(hours)*len(minutes)*len(seconds))
	for _, h := range hours {
		for _, m := range minutes {
			for _, s := range seconds {
				out = append(out, timeOfDay{hour: h, minute: m, second: s})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.hour != b.hour {
			return a.hour < b.hour
		}
		if a.minute != b.minute {
			return a.minute < b.minute
		}
		return a.second < b.second
	})
	return out
}

// timesetFor returns the timeset for the current (hour, minute, second)
// position at the given frequency: the cached cartesian
// product for freq <= Daily, or a recomputed product for the sub-day
// frequencies, where the iterator's current position fixes the hour
// (Hourly), the hour and minute (Minutely), or all three (Secondly), and
// the remaining fields expand from the BY parts.
func timesetFor(r *Rule, hour, minute, second int) []timeOfDay {
	switch r.freq {
	case Hourly:
		out := make([]timeOfDay, 0, len(r.byminute)*len(r.bysecond))
		for _, m := range r.byminute {
			for _, s := range r.bysecond {
				out = append(out, timeOfDay{hour: hour, minute: m, second: s})
			}
		}
		sortTimeset(out)
		return out
	case Minutely:
		out := make([]timeOfDay, 0, len(r.bysecond))
		for _, s := range r.bysecond {
			out = append(out, timeOfDay{hour: hour, minute: minute, second: s})
		}
		sortTimeset(out)
		return out
	case Secondly:
		return []timeOfDay{{hour: hour, minute: minute, second: second}}
	default:
		return r.timesetCached
	}
}

func sortTimeset(tt []timeOfDay) {
	sort.Slice(tt, func(i, j int) bool {
		a, b := tt[i], tt[j]
		if a.hour != b.hour {
			return a.hour < b.hour
		}
		if a.minute != b.minute {
			return a.minute < b.minute
		}
		return a.second < b.second
	})
}
