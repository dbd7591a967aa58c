package viz

import (
	"math"
	"testing"
	"unicode/utf8"
)

func TestBar_SpringSettles(t *testing.T) {
	b := newBar("|E'|", KindE)
	b.Target = 2.5
	for i := 0; i < 5*fps; i++ {
		b.Step()
	}
	if !b.Settled(1e-3) {
		t.Errorf("bar at %v, want settled at 2.5", b.Pos)
	}

	b.Target = math.NaN()
	for i := 0; i < 5*fps; i++ {
		b.Step()
	}
	if !b.Settled(1e-3) || math.Abs(b.Pos) > 1e-3 {
		t.Errorf("bar at %v, want settled at 0 for NaN target", b.Pos)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 3, "───"},
		{"ramp", []float64{0, 1}, 2, "▁█"},
		{"flat", []float64{2, 2, 2}, 3, "▁▁▁"},
		{"nan gap", []float64{0, math.NaN(), 1}, 3, "▁ █"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sparkline(tt.values, tt.width)
			if got != tt.want {
				t.Errorf("Sparkline = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n != tt.width {
				t.Errorf("width %d, want %d", n, tt.width)
			}
		})
	}
}
