package schedule

import "log"

// SlotState is the display state of a single slot. The three values must
// stay distinguishable: calendar rendering treats "not open for booking"
// and "open but taken" differently.
type SlotState string

const (
	SlotFree    SlotState = "free"    // inside the window, no reservation covers it
	SlotBooked  SlotState = "booked"  // a reservation's [start, end) contains the slot
	SlotBlocked SlotState = "blocked" // outside the operating window
)

// Occupancy is the minimal view of a reservation the evaluator needs: its
// time range plus a stable ordering key for the defensive tie-break.
// model.Reservation implements it.
type Occupancy interface {
	Range() (start, end TimeOfDay)
	// CreatedOrder returns a monotonically increasing value (typically the
	// row id) used to pick the earliest-created reservation when the
	// no-overlap invariant has been violated upstream.
	CreatedOrder() uint64
}

// IsBookable reports whether a slot start time lies within the window,
// i.e. in [From, To] inclusive.
func IsBookable(w Window, slot TimeOfDay) bool {
	return slot >= w.From && slot <= w.To
}

// FindBooked returns the occupancy whose [start, end) contains the slot
// time, or nil when the slot is free. By the ledger's no-overlap
// invariant at most one entry can match; should more than one match, the
// earliest-created wins and a consistency warning is logged.
func FindBooked(entries []Occupancy, slot TimeOfDay) Occupancy {
	var best Occupancy
	for _, e := range entries {
		start, end := e.Range()
		if slot < start || slot >= end {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		log.Printf("schedule: overlap invariant violated at %s: reservations %d and %d both cover the slot",
			slot, best.CreatedOrder(), e.CreatedOrder())
		if e.CreatedOrder() < best.CreatedOrder() {
			best = e
		}
	}
	return best
}

// SlotStatus pairs a slot time with its evaluated state. Entry carries
// the winning occupancy and is non-nil only when State == SlotBooked.
type SlotStatus struct {
	Time  TimeOfDay
	State SlotState
	Entry Occupancy
}

// Evaluate classifies a single slot time against the window and the
// reservations of that court and date.
func Evaluate(w Window, entries []Occupancy, slot TimeOfDay) SlotStatus {
	if !IsBookable(w, slot) {
		return SlotStatus{Time: slot, State: SlotBlocked}
	}
	if e := FindBooked(entries, slot); e != nil {
		return SlotStatus{Time: slot, State: SlotBooked, Entry: e}
	}
	return SlotStatus{Time: slot, State: SlotFree}
}

// Grid evaluates every slot of the window in order. It is the shape the
// calendar endpoints render directly.
func Grid(w Window, entries []Occupancy) []SlotStatus {
	slots := Slots(w)
	out := make([]SlotStatus, 0, len(slots))
	for _, s := range slots {
		out = append(out, Evaluate(w, entries, s))
	}
	return out
}
