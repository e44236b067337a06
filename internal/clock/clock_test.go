package clock

import "testing"

func TestMilliseconds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		ticks float64
		rate  int64
		want  int64
	}{
		{"zero", 0, Rate27MHz, 0},
		{"one second", 27_000_000, Rate27MHz, 1000},
		{"truncates positive", 53_999, Rate27MHz, 1},
		{"truncates negative toward zero", -53_999, Rate27MHz, -1},
		{"sub-millisecond negative", -100, Rate27MHz, 0},
		{"default rate", 27_000, 0, 1},
		{"one millisecond of ticks", TicksPerMillisecond, Rate27MHz, 1},
		{"90 kHz units", 90_000, 90_000, 1000},
	}
	for _, tc := range tests {
		if got := Milliseconds(tc.ticks, tc.rate); got != tc.want {
			t.Errorf("%s: Milliseconds(%v, %d) = %d, want %d", tc.name, tc.ticks, tc.rate, got, tc.want)
		}
	}
}

func TestPTSToTicks(t *testing.T) {
	t.Parallel()
	if got := PTSToTicks(90000); got != Rate27MHz {
		t.Errorf("PTSToTicks(90000) = %d, want %d", got, Rate27MHz)
	}
}

func TestAddPTSWraps(t *testing.T) {
	t.Parallel()
	if got := AddPTS(PTSWrap-10, 25); got != 15 {
		t.Errorf("AddPTS wrap: got %d, want 15", got)
	}
	if got := AddPTS(900000, 0); got != 900000 {
		t.Errorf("AddPTS zero adjustment: got %d, want 900000", got)
	}
}
