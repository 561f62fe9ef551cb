package schedule

import (
	"reflect"
	"testing"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func TestSlotsEnumeration(t *testing.T) {
	w := Window{From: mustTime(t, "07:00"), To: mustTime(t, "09:00")}
	got := Slots(w)
	want := []TimeOfDay{420, 450, 480, 510, 540} // 07:00 .. 09:00 inclusive
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots(07:00-09:00) = %v, want %v", got, want)
	}
}

func TestSlotsDeterministic(t *testing.T) {
	w := DefaultWindow()
	a := Slots(w)
	b := Slots(w)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Slots is not deterministic for the same window")
	}
	// 07:00 through 22:00 at 30-minute spacing
	if len(a) != 31 {
		t.Fatalf("default window slot count = %d, want 31", len(a))
	}
	if a[0] != DefaultWindowFrom || a[len(a)-1] != DefaultWindowTo {
		t.Fatalf("default window bounds = %s..%s, want 07:00..22:00", a[0], a[len(a)-1])
	}
}

func TestSlotsUnalignedWindow(t *testing.T) {
	w := Window{From: mustTime(t, "07:00"), To: mustTime(t, "08:45")}
	got := Slots(w)
	want := []TimeOfDay{420, 450, 480, 510} // last slot not exceeding 08:45
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots(07:00-08:45) = %v, want %v", got, want)
	}
}

func TestSlotsInvalidWindow(t *testing.T) {
	if got := Slots(Window{From: 600, To: 600}); got != nil {
		t.Errorf("Slots of empty window = %v, want nil", got)
	}
	if got := Slots(Window{From: 660, To: 600}); got != nil {
		t.Errorf("Slots of inverted window = %v, want nil", got)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{From: mustTime(t, "07:00"), To: mustTime(t, "22:00")}
	cases := []struct {
		name       string
		start, end TimeOfDay
		want       bool
	}{
		{"inside", 600, 660, true},
		{"starts at from", 420, 480, true},
		{"ends exactly at to", 1260, 1320, true},
		{"extends past to", 1290, 1350, false},
		{"starts before from", 390, 450, false},
	}
	for _, c := range cases {
		if got := w.Contains(c.start, c.end); got != c.want {
			t.Errorf("%s: Contains(%s, %s) = %v, want %v", c.name, c.start, c.end, got, c.want)
		}
	}
}
