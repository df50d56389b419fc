package rrule

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// knownRuleParts is the RFC 5545 rule-part vocabulary this validator
// accepts. Anything else in the raw map is an unknown key.
var knownRuleParts = map[string]bool{
	"DTSTART": true, "FREQ": true, "UNTIL": true, "COUNT": true,
	"INTERVAL": true, "BYSECOND": true, "BYMINUTE": true, "BYHOUR": true,
	"BYDAY": true, "BYMONTHDAY": true, "BYYEARDAY": true, "BYWEEKNO": true,
	"BYMONTH": true, "BYSETPOS": true, "WKST": true,
}

// Create validates and normalizes a raw rule-part record into an immutable
// Rule, inferring defaulted BY parts from dtstart and enforcing RFC 5545's
// cross-part constraints. Keys are case-insensitive on input but must
// otherwise match the RFC 5545 rule-part names exactly.
func Create(parts map[string]interface{}) (*Rule, error) {
	norm, unknown := normalizeKeys(parts)
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownKeysError{Keys: unknown}
	}

	r := &Rule{interval: 1, wkst: Monday, raw: norm}

	if v, ok := norm["DTSTART"]; ok {
		t, err := toTimestamp(v)
		if err != nil {
			return nil, verr(norm, "DTSTART", err)
		}
		r.dtstart = t
	} else {
		r.dtstart = time.Now()
	}

	freqStr, ok := norm["FREQ"]
	if !ok {
		return nil, verr(norm, "FREQ", ErrFrequencyRequired)
	}
	freqName, err := cast.ToStringE(freqStr)
	if err != nil {
		return nil, verr(norm, "FREQ", ErrInvalidFrequency)
	}
	freq, ok := frequencyNames[strings.ToUpper(freqName)]
	if !ok {
		return nil, verr(norm, "FREQ", ErrInvalidFrequency)
	}
	r.freq = freq

	if v, ok := norm["INTERVAL"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil || n <= 0 {
			return nil, verr(norm, "INTERVAL", ErrInvalidInterval)
		}
		r.interval = n
	}

	if v, ok := norm["WKST"]; ok {
		name, err := cast.ToStringE(v)
		if err != nil {
			return nil, verr(norm, "WKST", ErrInvalidWeekday)
		}
		wd, ok := weekdayNames[strings.ToUpper(name)]
		if !ok {
			return nil, verr(norm, "WKST", ErrInvalidWeekday)
		}
		r.wkst = wd
	}

	hasCount := false
	if v, ok := norm["COUNT"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil || n <= 0 {
			return nil, verr(norm, "COUNT", ErrInvalidCount)
		}
		r.count = n
		hasCount = true
	}
	if v, ok := norm["UNTIL"]; ok {
		t, err := toTimestamp(v)
		if err != nil {
			return nil, verr(norm, "UNTIL", err)
		}
		if hasCount {
			return nil, verr(norm, "UNTIL", ErrCountAndUntil)
		}
		r.until = t
	}

	if v, ok := norm["BYMONTH"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYMONTH", err)
		}
		for _, m := range vals {
			if m < 1 || m > 12 {
				return nil, verr(norm, "BYMONTH", ErrOutOfRange)
			}
		}
		r.bymonth = vals
	}

	if v, ok := norm["BYWEEKNO"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYWEEKNO", err)
		}
		for _, w := range vals {
			if w == 0 || w < -53 || w > 53 {
				return nil, verr(norm, "BYWEEKNO", ErrOutOfRange)
			}
		}
		r.byweekno = vals
	}

	if v, ok := norm["BYYEARDAY"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYYEARDAY", err)
		}
		for _, d := range vals {
			if d == 0 || d < -366 || d > 366 {
				return nil, verr(norm, "BYYEARDAY", ErrOutOfRange)
			}
		}
		r.byyearday = vals
	}

	if v, ok := norm["BYMONTHDAY"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYMONTHDAY", err)
		}
		for _, d := range vals {
			switch {
			case d == 0 || d < -31 || d > 31:
				return nil, verr(norm, "BYMONTHDAY", ErrOutOfRange)
			case d > 0:
				r.bymonthday = append(r.bymonthday, d)
			default:
				r.bymonthdayNegative = append(r.bymonthdayNegative, d)
			}
		}
	}

	if v, ok := norm["BYDAY"]; ok {
		tokens, err := toStringSlice(v)
		if err != nil {
			return nil, verr(norm, "BYDAY", err)
		}
		for _, tok := range tokens {
			wn, err := parseByDay(tok)
			if err != nil {
				return nil, err
			}
			if wn.N == 0 {
				r.byweekday = append(r.byweekday, wn.Weekday)
			} else {
				r.byweekdayNth = append(r.byweekdayNth, wn)
			}
		}
	}

	if v, ok := norm["BYHOUR"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYHOUR", err)
		}
		for _, h := range vals {
			if h < 0 || h > 23 {
				return nil, verr(norm, "BYHOUR", ErrOutOfRange)
			}
		}
		r.byhour = vals
	}

	if v, ok := norm["BYMINUTE"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYMINUTE", err)
		}
		for _, m := range vals {
			if m < 0 || m > 59 {
				return nil, verr(norm, "BYMINUTE", ErrOutOfRange)
			}
		}
		r.byminute = vals
	}

	if v, ok := norm["BYSECOND"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYSECOND", err)
		}
		for _, s := range vals {
			if s < 0 || s > 60 {
				return nil, verr(norm, "BYSECOND", ErrOutOfRange)
			}
		}
		r.bysecond = vals
	}

	if v, ok := norm["BYSETPOS"]; ok {
		vals, err := toIntSlice(v)
		if err != nil {
			return nil, verr(norm, "BYSETPOS", err)
		}
		for _, p := range vals {
			if p == 0 || p < -366 || p > 366 {
				return nil, verr(norm, "BYSETPOS", ErrOutOfRange)
			}
		}
		r.bysetpos = vals
	}

	if err := crossValidate(r); err != nil {
		return nil, err
	}

	applyDefaults(r)

	if r.freq <= Daily {
		r.timesetCached = buildTimeset(r.byhour, r.byminute, r.bysecond)
	}

	return r, nil
}

func crossValidate(r *Rule) error {
	if len(r.byweekdayNth) > 0 {
		if r.freq != Monthly && r.freq != Yearly {
			return verr(r.raw, "BYDAY", ErrByWeekdayNthFreq)
		}
		if r.freq == Yearly && len(r.byweekno) > 0 {
			return verr(r.raw, "BYDAY", ErrByWeekNoConflict)
		}
	}
	if r.freq == Weekly && (len(r.bymonthday) > 0 || len(r.bymonthdayNegative) > 0) {
		return verr(r.raw, "BYMONTHDAY", ErrByMonthDayWeekly)
	}
	if len(r.byyearday) > 0 && (r.freq == Daily || r.freq == Weekly || r.freq == Monthly) {
		return verr(r.raw, "BYYEARDAY", ErrByYearDayFreq)
	}
	if len(r.byweekno) > 0 && r.freq != Yearly {
		return verr(r.raw, "BYWEEKNO", ErrByWeekNoFreq)
	}
	if len(r.bysetpos) > 0 {
		if len(r.bymonth) == 0 && len(r.byweekno) == 0 && len(r.byyearday) == 0 &&
			len(r.bymonthday) == 0 && len(r.bymonthdayNegative) == 0 &&
			len(r.byweekday) == 0 && len(r.byweekdayNth) == 0 &&
			len(r.byhour) == 0 && len(r.byminute) == 0 && len(r.bysecond) == 0 {
			return verr(r.raw, "BYSETPOS", ErrBySetPosNeedsOther)
		}
	}
	return nil
}

// verr builds a ValidationError carrying the literal raw value (if any) that
// was supplied for the given rule part, so the caller's error message shows
// what was actually rejected rather than just which part and why.
func verr(raw map[string]interface{}, part string, err error) *ValidationError {
	return &ValidationError{Part: part, Err: err, Value: raw[part]}
}

// applyDefaults fills in BY parts inferred from dtstart per RFC 5545 §3.3.10.
func applyDefaults(r *Rule) {
	noDateSelector := len(r.byweekno) == 0 && len(r.byyearday) == 0 &&
		len(r.bymonthday) == 0 && len(r.bymonthdayNegative) == 0 &&
		len(r.byweekday) == 0 && len(r.byweekdayNth) == 0

	if noDateSelector {
		switch r.freq {
		case Yearly:
			if len(r.bymonth) == 0 {
				r.bymonth = []int{int(r.dtstart.Month())}
			}
			r.bymonthday = []int{r.dtstart.Day()}
		case Monthly:
			r.bymonthday = []int{r.dtstart.Day()}
		case Weekly:
			r.byweekday = []Weekday{weekdayFromPyIndex(toPyWeekday(r.dtstart.Weekday()))}
		}
	}

	if r.freq < Hourly && len(r.byhour) == 0 {
		r.byhour = []int{r.dtstart.Hour()}
	}
	if r.freq < Minutely && len(r.byminute) == 0 {
		r.byminute = []int{r.dtstart.Minute()}
	}
	if r.freq < Secondly && len(r.bysecond) == 0 {
		r.bysecond = []int{r.dtstart.Second()}
	}
}

func normalizeKeys(parts map[string]interface{}) (map[string]interface{}, []string) {
	norm := make(map[string]interface{}, len(parts))
	var unknown []string
	for k, v := range parts {
		upper := strings.ToUpper(k)
		if !knownRuleParts[upper] {
			unknown = append(unknown, k)
			continue
		}
		norm[upper] = v
	}
	return norm, unknown
}

// toTimestamp coerces a raw DTSTART/UNTIL value. RFC 5545's own basic
// date-time formats ("20060102T150405Z" and friends) aren't layouts cast
// knows about, so those are tried directly first; everything else — a
// time.Time passed through as-is, a seconds-since-epoch integer, or an
// RFC-3339-ish string — is handed to cast.ToTimeE.
func toTimestamp(v interface{}) (time.Time, error) {
	if s, ok := v.(string); ok {
		for _, layout := range []string{
			"20060102T150405Z",
			"20060102T150405",
			"20060102",
		} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, ErrUnparseableTime
	}
	return t, nil
}

// toIntSlice coerces a raw BY* value into a slice of ints. It accepts a
// native []int, a []interface{} of mixed numeric/string entries, a single
// scalar, or a comma-separated string — the four shapes RFC 5545 says the
// validator must normalize into sets.
func toIntSlice(v interface{}) ([]int, error) {
	switch t := v.(type) {
	case []int:
		return append([]int(nil), t...), nil
	case string:
		var out []int
		for _, part := range strings.Split(t, ",") {
			n, err := cast.ToIntE(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case []interface{}:
		out := make([]int, 0, len(t))
		for _, item := range t {
			n, err := cast.ToIntE(item)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	default:
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, err
		}
		return []int{n}, nil
	}
}

// toStringSlice coerces a raw BYDAY value the same way toIntSlice does for
// numeric BY* parts.
func toStringSlice(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case string:
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}
