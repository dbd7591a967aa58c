package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/sweep"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

func TestGridSearch_Quadratic(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{-1, 0, 1, 2}, {-2, 3}})
	best, val, err := g.Search(context.Background(), func(p map[string]float64) float64 {
		return (p["a"]-1)*(p["a"]-1) + (p["b"]-3)*(p["b"]-3)
	})
	if err != nil {
		t.Fatal(err)
	}
	if best["a"] != 1 || best["b"] != 3 || val != 0 {
		t.Errorf("best = %v (%v), want a=1 b=3", best, val)
	}
}

func TestGridSearch_SkipsNaN(t *testing.T) {
	g := NewGridSearch([]string{"a"}, [][]float64{{0, 1}})
	best, _, err := g.Search(context.Background(), func(map[string]float64) float64 { return math.NaN() })
	if err != nil {
		t.Fatal(err)
	}
	if best != nil {
		t.Errorf("best = %v, want nil when nothing is finite", best)
	}
}

func TestGridSearch_Errors(t *testing.T) {
	if _, _, err := NewGridSearch([]string{"a"}, nil).Search(context.Background(), nil); err == nil {
		t.Error("expected an error for mismatched ranges")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"a"}, [][]float64{{0}})
	if _, _, err := g.Search(ctx, func(map[string]float64) float64 { return 0 }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// In crossed fields with |E| < |B| the drift velocity E×B/B² is the
// frame where the electric field vanishes.
func TestQuantityObjective_FindsDriftFrame(t *testing.T) {
	base := lorentz.Input{
		EField:         vecmath.New(0, 0.5, 0),
		BField:         vecmath.New(0, 0, 1),
		ParticleCharge: 1,
		ParticleMass:   1,
	}
	obj, err := QuantityObjective(base, "e-prime", "mag", false)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGridSearch([]string{"speed", "phi", "theta"}, [][]float64{
		{0, 0.25, 0.5, 0.75},
		{0, math.Pi / 2, math.Pi},
		{-math.Pi / 2, 0, math.Pi / 2},
	})
	best, val, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if val > 1e-12 {
		t.Errorf("|E'| = %v at %v, want 0", val, best)
	}
	if best["speed"] != 0.5 || best["phi"] != math.Pi/2 || best["theta"] != math.Pi/2 {
		t.Errorf("best = %v, want speed 0.5 along +x", best)
	}
}

func TestQuantityObjective_UnknownQuantity(t *testing.T) {
	if _, err := QuantityObjective(lorentz.Input{}, "nope", "mag", false); !errors.Is(err, sweep.ErrInvalidSweep) {
		t.Errorf("expected ErrInvalidSweep, got %v", err)
	}
}

func TestBoostGrid(t *testing.T) {
	g, err := BoostGrid(0.9, 10, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.ranges[0]) != 10 || math.Abs(g.ranges[0][9]-0.9) > 1e-12 {
		t.Errorf("speeds = %v", g.ranges[0])
	}
	if len(g.ranges[1]) != 5 || g.ranges[1][4] != math.Pi {
		t.Errorf("phis = %v", g.ranges[1])
	}
	if len(g.ranges[2]) != 8 || g.ranges[2][0] != -math.Pi {
		t.Errorf("thetas = %v", g.ranges[2])
	}
}

func TestBoostGrid_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		maxSpeed   float64
		speedSteps int
		angleSteps int
	}{
		{"zero angle steps", 0.9999, 10, 0},
		{"negative angle steps", 0.9999, 10, -1},
		{"zero speed steps", 0.9999, 0, 8},
		{"negative speed steps", 0.9999, -3, 8},
		{"light speed", 1, 10, 8},
		{"NaN speed", math.NaN(), 10, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BoostGrid(tt.maxSpeed, tt.speedSteps, tt.angleSteps)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
			if g != nil {
				t.Errorf("expected no grid, got %v", g)
			}
		})
	}
}

func TestBoostGrid_SingleSteps(t *testing.T) {
	g, err := BoostGrid(0.5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range g.ranges {
		if len(r) != 1 {
			t.Errorf("range %d = %v, want one value", i, r)
		}
	}
}
