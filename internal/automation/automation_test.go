package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
)

const testScript = `
name: boost-tour
description: flip and rest
steps:
  - name: start
    set:
      v: 0.6
      vphi: 90
      vtheta: 90
  - name: flipped
    flip: true
    save_as: flipped
  - name: rest
    preset: rest-charge
    query: q=-1&showE=false&ex=oops
    toggle: [force]
`

type fakeSaver struct{ names []string }

func (f *fakeSaver) Save(_ context.Context, name string, _ state.State) (persist.Scenario, error) {
	f.names = append(f.names, name)
	return persist.Scenario{ID: "id-" + name, Name: name}, nil
}

func loadTestScript(t *testing.T) *Script {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatal(err)
	}
	script, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	return script
}

func newStore(t *testing.T) *state.Store {
	t.Helper()
	st, err := state.New(state.DefaultPolicy(), state.Default())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRun(t *testing.T) {
	script := loadTestScript(t)
	if len(script.Steps) != 3 {
		t.Fatalf("loaded %d steps, want 3", len(script.Steps))
	}

	saver := &fakeSaver{}
	results, err := Run(context.Background(), script, newStore(t), saver)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	if v := results[0].Quantities.BoostVelocity; math.Abs(v.X-0.6) > 1e-12 {
		t.Errorf("start boost = %v, want (0.6, 0, 0)", v)
	}
	if v := results[1].Quantities.BoostVelocity; math.Abs(v.X+0.6) > 1e-12 {
		t.Errorf("flipped boost = %v, want (-0.6, 0, 0)", v)
	}
	if results[1].SavedID != "id-flipped" || len(saver.names) != 1 {
		t.Errorf("save_as not honored: %v %v", results[1].SavedID, saver.names)
	}

	rest := results[2]
	if rest.State.Particle.Charge != -1 {
		t.Errorf("charge = %v, want -1", rest.State.Particle.Charge)
	}
	if rest.State.Display.E || rest.State.Display.Force {
		t.Error("display toggles not applied")
	}
	if len(rest.Warnings) != 1 || rest.Warnings[0].Field != "ex" {
		t.Errorf("warnings = %v, want one for ex", rest.Warnings)
	}
}

func TestRun_Errors(t *testing.T) {
	script := loadTestScript(t)
	results, err := Run(context.Background(), script, newStore(t), nil)
	if !errors.Is(err, ErrNoSaver) {
		t.Errorf("expected ErrNoSaver, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results before the failing step, want 1", len(results))
	}

	bad := &Script{Steps: []Step{{Set: map[string]string{"zz": "1"}}}}
	if _, err := Run(context.Background(), bad, newStore(t), nil); !errors.Is(err, input.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, script, newStore(t), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	cfg := DefaultCheckConfig(1e-9)
	cfg.Trials = 300
	cfg.Seed = 42
	res, err := Check(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Fatalf("check failed: %+v", res.First)
	}
	if res.Trials != 300 || res.Seed != 42 {
		t.Errorf("trials %d seed %d", res.Trials, res.Seed)
	}

	again, _ := Check(context.Background(), cfg)
	if again.WorstRoundTrip != res.WorstRoundTrip {
		t.Error("same seed gave different results")
	}
}

func TestCheck_FailsAtZeroTolerance(t *testing.T) {
	cfg := DefaultCheckConfig(0)
	cfg.Trials = 300
	cfg.Seed = 7
	res, err := Check(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Passed() || res.First == nil {
		t.Error("expected rounding error to exceed a zero tolerance")
	}
}

func TestRun_QueryNamesInSet(t *testing.T) {
	script := &Script{Steps: []Step{{
		Query: "vr=0.2",
		Set:   map[string]string{"ur": "0.3", "mass": "2"},
	}}}
	results, err := Run(context.Background(), script, newStore(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := results[0].State
	if s.Boost.Velocity.R != 0.2 || s.Particle.Velocity.R != 0.3 || s.Particle.Mass != 2 {
		t.Errorf("state = %+v, want boost 0.2, particle 0.3, mass 2", s)
	}
}
