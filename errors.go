package rrule

import (
	"errors"
	"fmt"
)

// Sentinel errors for rule validation, grounded on the simple-ical
// "rrule/errors.go" sentinel-var-block style. Every one except
// ErrUnbounded is only ever raised during Create; none is raised during
// iteration.
var (
	ErrUnknownKey         = errors.New("unknown rule part")
	ErrFrequencyRequired  = errors.New("frequency is required")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidWeekday     = errors.New("invalid weekday")
	ErrInvalidByDay       = errors.New("invalid BYDAY value")
	ErrCountAndUntil      = errors.New("count and until cannot both be set")
	ErrInvalidInterval    = errors.New("interval must be a positive integer")
	ErrInvalidCount       = errors.New("count must be a positive integer")
	ErrOutOfRange         = errors.New("value out of range")
	ErrByWeekdayNthFreq   = errors.New("byday numeric prefix requires MONTHLY or YEARLY frequency")
	ErrByWeekNoConflict   = errors.New("byweekno conflicts with byday numeric prefix under YEARLY frequency")
	ErrByMonthDayWeekly   = errors.New("bymonthday is not allowed with WEEKLY frequency")
	ErrByYearDayFreq      = errors.New("byyearday is not allowed with DAILY, WEEKLY, or MONTHLY frequency")
	ErrByWeekNoFreq       = errors.New("byweekno requires YEARLY frequency")
	ErrBySetPosNeedsOther = errors.New("bysetpos requires at least one other BY-part")
	ErrUnparseableTime    = errors.New("could not parse timestamp")

	// ErrUnbounded is the LogicError raised by All() when a rule has
	// neither COUNT nor UNTIL and would therefore never terminate.
	ErrUnbounded = errors.New("rule has no count or until; All() would never terminate")
)

// ValidationError reports which rule part failed validation, why, and the
// literal raw value that was rejected (nil if the part was never supplied,
// e.g. ErrFrequencyRequired). It is only ever constructed inside
// Create/validate.
type ValidationError struct {
	Part  string
	Err   error
	Value interface{}
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("rrule: %s: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("rrule: %s: %v (got %#v)", e.Part, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnknownKeysError lists every raw rule-part key Create didn't recognize,
// so a caller fixing a typo sees all offenders in one pass rather than
// one error per retry.
type UnknownKeysError struct {
	Keys []string
}

func (e *UnknownKeysError) Error() string {
	return fmt.Sprintf("rrule: unknown rule part(s): %v", e.Keys)
}

func (e *UnknownKeysError) Unwrap() error {
	return ErrUnknownKey
}
