package input

import (
	"fmt"
	"sort"

	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Presets are named field configurations. Applying one replaces the field
// and, where it matters for the scenario, the boost.
var Presets = map[string]func(state.State) state.State{
	"default": func(state.State) state.State {
		return state.Default()
	},
	// Plane wave travelling along +x: E ⊥ B and |E| = |B| in every frame.
	"light-wave": func(s state.State) state.State {
		s.Field = state.Field{E: vecmath.New(0, 1, 0), B: vecmath.New(0, 0, 1)}
		return s
	},
	"pure-electric": func(s state.State) state.State {
		s.Field = state.Field{E: vecmath.New(0, 1, 0)}
		return s
	},
	"pure-magnetic": func(s state.State) state.State {
		s.Field = state.Field{B: vecmath.New(0, 1, 0)}
		return s
	},
	// Crossed fields with |E| < |B| viewed from the E×B drift frame, where
	// the electric field vanishes.
	"crossed": func(s state.State) state.State {
		e := vecmath.New(0, 0.5, 0)
		b := vecmath.New(0, 0, 1)
		s.Field = state.Field{E: e, B: b}
		drift := e.Cross(b).Scale(1 / b.LengthSq())
		s.Boost.Velocity = drift.Spherical()
		return s
	},
	// Particle at rest in a pure electric field, boost perpendicular to it.
	"rest-charge": func(s state.State) state.State {
		s.Field = state.Field{E: vecmath.New(1, 0, 0)}
		s.Particle.Velocity = vecmath.Spherical{}
		s.Boost.Velocity = vecmath.NewSpherical(0.6, 0, 0)
		return s
	},
}

// PresetNames lists the presets in stable order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset returns s with the named preset applied.
func ApplyPreset(s state.State, name string) (state.State, error) {
	fn, ok := Presets[name]
	if !ok {
		return s, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return fn(s), nil
}

// NextPreset returns the preset following name in PresetNames, wrapping around.
func NextPreset(name string) string {
	names := PresetNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
