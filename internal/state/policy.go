package state

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldboost/internal/vecmath"
)

const (
	// DefaultMaxSpeed is the largest boost or particle speed let through to
	// the engine. It is a policy value, not a physical constant.
	DefaultMaxSpeed = 0.9999
	// DefaultMinMass replaces non-positive particle masses.
	DefaultMinMass = 0.1
)

// Policy clamps a State into the domain the field transform is defined on.
type Policy struct {
	MaxSpeed float64
	MinMass  float64
}

func DefaultPolicy() Policy {
	return Policy{MaxSpeed: DefaultMaxSpeed, MinMass: DefaultMinMass}
}

// Validate checks that the policy itself keeps the engine preconditions.
func (p Policy) Validate() error {
	if !(p.MaxSpeed > 0 && p.MaxSpeed < 1) {
		return fmt.Errorf("%w: max speed %v not in (0, 1)", ErrInvalidPolicy, p.MaxSpeed)
	}
	if !(p.MinMass > 0) || math.IsInf(p.MinMass, 0) {
		return fmt.Errorf("%w: min mass %v not positive", ErrInvalidPolicy, p.MinMass)
	}
	return nil
}

// Apply returns s with every value forced into range. Non-finite numbers
// become 0, except the mass which becomes MinMass like any other
// non-positive mass.
func (p Policy) Apply(s State) State {
	s.Field.E = finiteVec(s.Field.E)
	s.Field.B = finiteVec(s.Field.B)
	s.Boost.Velocity = p.ClampVelocity(s.Boost.Velocity)
	s.Particle.Velocity = p.ClampVelocity(s.Particle.Velocity)
	s.Particle.Charge = finite(s.Particle.Charge)
	s.Particle.Mass = p.ClampMass(s.Particle.Mass)
	return s
}

// ClampVelocity limits the magnitude to MaxSpeed. A negative magnitude is
// read as the opposite direction.
func (p Policy) ClampVelocity(v vecmath.Spherical) vecmath.Spherical {
	v = vecmath.NewSpherical(finite(v.R), finite(v.Phi), finite(v.Theta))
	if v.R < 0 {
		v = v.Antipode().WithRadius(-v.R)
	}
	if v.R > p.MaxSpeed {
		v.R = p.MaxSpeed
	}
	return v
}

// ClampMass replaces non-positive or non-finite masses with MinMass.
func (p Policy) ClampMass(m float64) float64 {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return p.MinMass
	}
	return m
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

func finiteVec(v vecmath.Vec3) vecmath.Vec3 {
	return vecmath.New(finite(v.X), finite(v.Y), finite(v.Z))
}
