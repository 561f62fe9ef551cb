package schedule

import "testing"

// span is a minimal Occupancy for evaluator tests.
type span struct {
	id         uint64
	start, end TimeOfDay
}

func (s span) Range() (TimeOfDay, TimeOfDay) { return s.start, s.end }
func (s span) CreatedOrder() uint64          { return s.id }

func TestIsBookable(t *testing.T) {
	w := Window{From: 420, To: 1320}
	cases := []struct {
		slot TimeOfDay
		want bool
	}{
		{420, true},   // at from
		{1320, true},  // at to
		{390, false},  // before opening
		{1350, false}, // after closing
		{600, true},
	}
	for _, c := range cases {
		if got := IsBookable(w, c.slot); got != c.want {
			t.Errorf("IsBookable(%s) = %v, want %v", c.slot, got, c.want)
		}
	}
}

func TestEvaluateTriState(t *testing.T) {
	w := Window{From: 420, To: 1320}
	entries := []Occupancy{span{id: 1, start: 600, end: 660}}

	if s := Evaluate(w, entries, 390); s.State != SlotBlocked {
		t.Errorf("slot before opening: state = %s, want blocked", s.State)
	}
	if s := Evaluate(w, entries, 600); s.State != SlotBooked {
		t.Errorf("covered slot: state = %s, want booked", s.State)
	} else if s.Entry == nil {
		t.Error("booked slot carries no occupancy")
	}
	if s := Evaluate(w, entries, 630); s.State != SlotBooked {
		t.Errorf("slot inside range: state = %s, want booked", s.State)
	}
	if s := Evaluate(w, entries, 660); s.State != SlotFree {
		// the range is half-open, the end slot is free again
		t.Errorf("slot at range end: state = %s, want free", s.State)
	}
	if s := Evaluate(w, entries, 720); s.State != SlotFree {
		t.Errorf("uncovered slot: state = %s, want free", s.State)
	}
}

func TestFindBookedNoMatch(t *testing.T) {
	entries := []Occupancy{span{id: 1, start: 600, end: 660}}
	if e := FindBooked(entries, 540); e != nil {
		t.Errorf("expected nil for free slot, got %v", e)
	}
}

func TestFindBookedEarliestWins(t *testing.T) {
	// Two overlapping entries simulate a violated invariant; the
	// earliest-created one must win regardless of input order.
	entries := []Occupancy{
		span{id: 7, start: 600, end: 720},
		span{id: 3, start: 630, end: 690},
	}
	if e := FindBooked(entries, 660); e == nil || e.CreatedOrder() != 3 {
		t.Fatalf("expected entry 3 to win, got %v", e)
	}

	reversed := []Occupancy{entries[1], entries[0]}
	if e := FindBooked(reversed, 660); e == nil || e.CreatedOrder() != 3 {
		t.Fatalf("expected entry 3 to win with reversed input, got %v", e)
	}
}

func TestGrid(t *testing.T) {
	w := Window{From: 420, To: 540} // 07:00-09:00
	entries := []Occupancy{span{id: 1, start: 450, end: 510}}

	grid := Grid(w, entries)
	if len(grid) != 5 {
		t.Fatalf("grid length = %d, want 5", len(grid))
	}
	wantStates := []SlotState{SlotFree, SlotBooked, SlotBooked, SlotFree, SlotFree}
	for i, want := range wantStates {
		if grid[i].State != want {
			t.Errorf("slot %s: state = %s, want %s", grid[i].Time, grid[i].State, want)
		}
	}
}
