// Package state holds the current input snapshot that feeds the field
// transform and notifies subscribers whenever it changes.
package state

import (
	"math"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Field is the electromagnetic field in the unprimed frame.
type Field struct {
	E vecmath.Vec3
	B vecmath.Vec3
}

// Boost is the velocity of the primed frame.
type Boost struct {
	Velocity vecmath.Spherical
}

// Particle describes the test charge.
type Particle struct {
	Velocity vecmath.Spherical
	Charge   float64
	Mass     float64
}

// Display holds the visibility toggles of the rendering layer.
type Display struct {
	E            bool
	B            bool
	Poynting     bool
	Primed       bool
	Particle     bool
	Force        bool
	Acceleration bool
}

// State is one complete input snapshot.
type State struct {
	Field    Field
	Boost    Boost
	Particle Particle
	Display  Display
}

// Default returns the scenario shown on start-up.
func Default() State {
	return State{
		Field: Field{
			E: vecmath.New(1, 1, 1),
			B: vecmath.New(-1, -1, -1),
		},
		Boost: Boost{
			Velocity: vecmath.NewSpherical(0.5, math.Pi/2, math.Pi/2),
		},
		Particle: Particle{
			Velocity: vecmath.NewSpherical(0.5, math.Pi/4, -math.Pi/4),
			Charge:   1,
			Mass:     1,
		},
		Display: AllVisible(),
	}
}

// AllVisible returns a Display with every toggle on.
func AllVisible() Display {
	return Display{
		E: true, B: true, Poynting: true, Primed: true,
		Particle: true, Force: true, Acceleration: true,
	}
}

// Input converts the snapshot into engine input.
func (s State) Input() lorentz.Input {
	return lorentz.Input{
		BoostVelocity:    s.Boost.Velocity,
		EField:           s.Field.E,
		BField:           s.Field.B,
		ParticleVelocity: s.Particle.Velocity,
		ParticleCharge:   s.Particle.Charge,
		ParticleMass:     s.Particle.Mass,
	}
}

// Quantities runs the field transform on the snapshot.
func (s State) Quantities() lorentz.Quantities {
	return lorentz.Compute(s.Input())
}
