package sweep

import (
	"fmt"
	"sort"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// VectorQuantities maps quantity names to the vector they select.
var VectorQuantities = map[string]func(lorentz.Quantities) vecmath.Vec3{
	"e-prime":        func(q lorentz.Quantities) vecmath.Vec3 { return q.EPrime },
	"b-prime":        func(q lorentz.Quantities) vecmath.Vec3 { return q.BPrime },
	"u":              func(q lorentz.Quantities) vecmath.Vec3 { return q.ParticleVelocity },
	"u-prime":        func(q lorentz.Quantities) vecmath.Vec3 { return q.ParticleVelocityPrime },
	"force":          func(q lorentz.Quantities) vecmath.Vec3 { return q.LorentzForce },
	"force-prime":    func(q lorentz.Quantities) vecmath.Vec3 { return q.LorentzForcePrime },
	"accel":          func(q lorentz.Quantities) vecmath.Vec3 { return q.ParticleAcceleration },
	"accel-prime":    func(q lorentz.Quantities) vecmath.Vec3 { return q.ParticleAccelerationPrime },
	"poynting":       func(q lorentz.Quantities) vecmath.Vec3 { return q.Poynting },
	"poynting-prime": func(q lorentz.Quantities) vecmath.Vec3 { return q.PoyntingPrime },
}

// ScalarQuantities maps names of scalar outputs to their accessor.
var ScalarQuantities = map[string]func(lorentz.Quantities) float64{
	"gamma":                func(q lorentz.Quantities) float64 { return q.BoostGamma },
	"rapidity":             func(q lorentz.Quantities) float64 { return q.BoostRapidity },
	"particle-gamma":       func(q lorentz.Quantities) float64 { return q.ParticleGamma },
	"particle-gamma-prime": func(q lorentz.Quantities) float64 { return q.ParticleGammaPrime },
	"dot-prime":            func(q lorentz.Quantities) float64 { return q.InvariantsPrime.Dot },
	"diff-prime":           func(q lorentz.Quantities) float64 { return q.InvariantsPrime.Difference },
}

// Components accepted by Series for vector quantities.
var Components = []string{"x", "y", "z", "mag"}

// Quantities lists every name Series accepts.
func Quantities() []string {
	names := make([]string, 0, len(VectorQuantities)+len(ScalarQuantities))
	for name := range VectorQuantities {
		names = append(names, name)
	}
	for name := range ScalarQuantities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one number per sample. component is ignored for scalar
// quantities.
func (r *Result) Series(quantity, component string) ([]float64, error) {
	pick, err := Selector(quantity, component)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = pick(s.Quantities)
	}
	return out, nil
}

// Selector returns the accessor for one quantity and component.
func Selector(quantity, component string) (func(lorentz.Quantities) float64, error) {
	if fn, ok := ScalarQuantities[quantity]; ok {
		return fn, nil
	}
	vec, ok := VectorQuantities[quantity]
	if !ok {
		return nil, fmt.Errorf("%w: unknown quantity %q (available: %v)", ErrInvalidSweep, quantity, Quantities())
	}
	switch component {
	case "x":
		return func(q lorentz.Quantities) float64 { return vec(q).X }, nil
	case "y":
		return func(q lorentz.Quantities) float64 { return vec(q).Y }, nil
	case "z":
		return func(q lorentz.Quantities) float64 { return vec(q).Z }, nil
	case "mag", "":
		return func(q lorentz.Quantities) float64 { return vec(q).Length() }, nil
	}
	return nil, fmt.Errorf("%w: unknown component %q (available: %v)", ErrInvalidSweep, component, Components)
}
