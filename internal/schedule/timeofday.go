// Package schedule contains the pure scheduling core: time-of-day
// arithmetic, slot enumeration over a court's operating window and the
// availability evaluation used by the calendar endpoints. Nothing in this
// package touches the database; all functions are deterministic given
// their inputs.
package schedule

import (
	"errors"
	"fmt"
)

// TimeOfDay is a clock time expressed as minutes since midnight
// (0 .. 1439). Interval comparisons are done on these integers instead
// of "HH:MM" strings so overlap tests never depend on lexical ordering.
type TimeOfDay int

// MinutesPerDay bounds valid TimeOfDay values.
const MinutesPerDay = 24 * 60

// ErrBadTimeOfDay is returned when a clock string cannot be parsed or is
// out of range.
var ErrBadTimeOfDay = errors.New("invalid time of day")

// ParseTimeOfDay parses a zero-padded "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrBadTimeOfDay
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, ErrBadTimeOfDay
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrBadTimeOfDay
	}
	return TimeOfDay(h*60 + m), nil
}

// String formats the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid reports whether the value lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent intervals (aEnd == bStart) do not
// overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}
