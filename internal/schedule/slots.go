package schedule

// SlotGranularity is the fixed spacing between bookable start times.
const SlotGranularity TimeOfDay = 30

// Default operating window applied when a court does not define its own
// bookable-from/bookable-to times.
const (
	DefaultWindowFrom TimeOfDay = 7 * 60  // 07:00
	DefaultWindowTo   TimeOfDay = 22 * 60 // 22:00
)

// Window is a court's operating window. Both bounds are inclusive start
// time candidates: a slot may start at From and the last slot may start
// at To.
type Window struct {
	From TimeOfDay
	To   TimeOfDay
}

// DefaultWindow returns the system-wide fallback window (07:00-22:00).
func DefaultWindow() Window {
	return Window{From: DefaultWindowFrom, To: DefaultWindowTo}
}

// Valid reports whether the window is a non-empty in-day range.
func (w Window) Valid() bool {
	return w.From.Valid() && w.To.Valid() && w.From < w.To
}

// Contains reports whether the booking range [start, end) lies fully
// inside the window: start no earlier than From and end no later than To.
// A booking ending exactly at To is accepted.
func (w Window) Contains(start, end TimeOfDay) bool {
	return start >= w.From && end <= w.To
}

// Slots enumerates every bookable start time in the window at the fixed
// 30-minute granularity, from From up to and including To. When To is
// not aligned to the grid relative to From, the last emitted slot is the
// latest one not exceeding To. The result is recomputed on every call;
// callers may range over it as often as they like.
func Slots(w Window) []TimeOfDay {
	if !w.Valid() {
		return nil
	}
	out := make([]TimeOfDay, 0, int((w.To-w.From)/SlotGranularity)+1)
	for t := w.From; t <= w.To; t += SlotGranularity {
		out = append(out, t)
	}
	return out
}
