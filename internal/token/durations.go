package token

import "time"

// durationUnits maps every accepted duration-unit spelling to its length.
// Compact literals (200ms) use the short forms; dotted literals
// (15.minutes) accept both short and spelled-out forms. The table is
// immutable after init and safe to read from concurrent parses.
var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,

	"nanoseconds":  time.Nanosecond,
	"microseconds": time.Microsecond,
	"milliseconds": time.Millisecond,
	"seconds":      time.Second,
	"minutes":      time.Minute,
	"hours":        time.Hour,
	"days":         24 * time.Hour,

	"nanosecond":  time.Nanosecond,
	"microsecond": time.Microsecond,
	"millisecond": time.Millisecond,
	"second":      time.Second,
	"minute":      time.Minute,
	"hour":        time.Hour,
	"day":         24 * time.Hour,
}

// LookupDurationUnit resolves a unit spelling to its duration.
func LookupDurationUnit(unit string) (time.Duration, bool) {
	d, ok := durationUnits[unit]
	return d, ok
}
