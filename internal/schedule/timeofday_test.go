package schedule

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"07:60", 0, true},
		{"7:00", 0, true},
		{"0700", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	cases := map[TimeOfDay]string{
		0:    "00:00",
		420:  "07:00",
		630:  "10:30",
		1439: "23:59",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("TimeOfDay(%d).String() = %q, want %q", int(in), got, want)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"07:00", "10:30", "21:45", "00:00"} {
		v, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
		}
		if v.String() != s {
			t.Errorf("round trip of %q produced %q", s, v.String())
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     TimeOfDay
		want                           bool
	}{
		{"identical", 600, 660, 600, 660, true},
		{"contained", 600, 720, 630, 660, true},
		{"partial overlap", 600, 660, 630, 690, true},
		{"adjacent back-to-back", 600, 660, 660, 720, false},
		{"disjoint", 600, 660, 720, 780, false},
		{"one minute overlap", 600, 661, 660, 720, true},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("%s: Overlaps(%d,%d,%d,%d) = %v, want %v",
				c.name, c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
		}
		// overlap is symmetric
		if got := Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd); got != c.want {
			t.Errorf("%s (swapped): Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}
