// Package sweep evaluates the field transform over a range of one input
// parameter, fanning the independent engine calls out over a worker pool.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/state"
)

var (
	// ErrInvalidSweep indicates a range, step count or parameter that
	// cannot be swept.
	ErrInvalidSweep = errors.New("sweep: invalid sweep")
)

// Spec describes one sweep.
type Spec struct {
	Over    string // parameter name, see Parameters
	From    float64
	To      float64
	Steps   int
	Workers int
	// Policy bounds speed and mass sweeps; the zero value means
	// state.DefaultPolicy.
	Policy state.Policy
}

func (s Spec) policy() state.Policy {
	if s.Policy == (state.Policy{}) {
		return state.DefaultPolicy()
	}
	return s.Policy
}

// Sample is the engine output for one parameter value.
type Sample struct {
	Value      float64
	Quantities lorentz.Quantities
}

// Result holds samples in parameter order.
type Result struct {
	Spec    Spec
	Samples []Sample
	// Largest |E'·B' - E·B| and |(E'²-B'²) - (E²-B²)| over all samples.
	DotDrift        float64
	DifferenceDrift float64
	// Samples whose output was not finite.
	NonFinite int
}

type parameter struct {
	set func(*lorentz.Input, float64)
	// inclusive domain under the clamp policy
	bounds func(state.Policy) (lo, hi float64)
}

func unbounded(state.Policy) (float64, float64) { return math.Inf(-1), math.Inf(1) }
func speedBounds(p state.Policy) (float64, float64) { return 0, p.MaxSpeed }
func massBounds(p state.Policy) (float64, float64) { return p.MinMass, math.Inf(1) }

var parameters = map[string]parameter{
	"speed":          {func(in *lorentz.Input, x float64) { in.BoostVelocity.R = x }, speedBounds},
	"phi":            {func(in *lorentz.Input, x float64) { in.BoostVelocity.Phi = x }, unbounded},
	"theta":          {func(in *lorentz.Input, x float64) { in.BoostVelocity.Theta = x }, unbounded},
	"particle-speed": {func(in *lorentz.Input, x float64) { in.ParticleVelocity.R = x }, speedBounds},
	"ex":             {func(in *lorentz.Input, x float64) { in.EField.X = x }, unbounded},
	"ey":             {func(in *lorentz.Input, x float64) { in.EField.Y = x }, unbounded},
	"ez":             {func(in *lorentz.Input, x float64) { in.EField.Z = x }, unbounded},
	"bx":             {func(in *lorentz.Input, x float64) { in.BField.X = x }, unbounded},
	"by":             {func(in *lorentz.Input, x float64) { in.BField.Y = x }, unbounded},
	"bz":             {func(in *lorentz.Input, x float64) { in.BField.Z = x }, unbounded},
	"charge":         {func(in *lorentz.Input, x float64) { in.ParticleCharge = x }, unbounded},
	"mass":           {func(in *lorentz.Input, x float64) { in.ParticleMass = x }, massBounds},
}

// aliases accept the query-string and terminal field names.
var aliases = map[string]string{
	"vr":     "speed",
	"v":      "speed",
	"vphi":   "phi",
	"vtheta": "theta",
	"ur":     "particle-speed",
	"u":      "particle-speed",
	"q":      "charge",
	"m":      "mass",
}

func lookup(name string) (parameter, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	p, ok := parameters[name]
	return p, ok
}

// Parameters lists the sweepable parameter names.
func Parameters() []string {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set applies value to the named parameter of in; unknown names are ignored.
func Set(in *lorentz.Input, name string, value float64) {
	if p, ok := lookup(name); ok {
		p.set(in, value)
	}
}

// Validate checks the spec against the parameter's domain.
func (s Spec) Validate() error {
	p, ok := lookup(s.Over)
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q (available: %v)", ErrInvalidSweep, s.Over, Parameters())
	}
	if s.Steps < 2 {
		return fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidSweep, s.Steps)
	}
	for _, x := range []float64{s.From, s.To} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: range bound %v is not finite", ErrInvalidSweep, x)
		}
		if lo, hi := p.bounds(s.policy()); x < lo || x > hi {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidSweep, s.Over, x, lo, hi)
		}
	}
	return nil
}

// Values returns the Steps evenly spaced parameter values from From to To.
func (s Spec) Values() []float64 {
	vals := make([]float64, s.Steps)
	floats.Span(vals, s.From, s.To)
	return vals
}

// Run computes the quantities for every sample of spec applied to base.
// Samples are evaluated concurrently by at most spec.Workers goroutines;
// ctx cancellation stops the sweep early with ctx.Err().
func Run(ctx context.Context, base lorentz.Input, spec Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	workers := spec.Workers
	if workers < 1 {
		workers = 1
	}

	p, _ := lookup(spec.Over)
	set := p.set
	values := spec.Values()
	samples := make([]Sample, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, x := range values {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := base
			set(&in, x)
			samples[i] = Sample{Value: x, Quantities: lorentz.Compute(in)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Spec: spec, Samples: samples}
	res.summarize()
	return res, nil
}

func (r *Result) summarize() {
	n := len(r.Samples)
	dot, dotPrime := make([]float64, 0, n), make([]float64, 0, n)
	diff, diffPrime := make([]float64, 0, n), make([]float64, 0, n)

	for _, s := range r.Samples {
		if !s.Quantities.IsFinite() {
			r.NonFinite++
			continue
		}
		dot = append(dot, s.Quantities.Invariants.Dot)
		dotPrime = append(dotPrime, s.Quantities.InvariantsPrime.Dot)
		diff = append(diff, s.Quantities.Invariants.Difference)
		diffPrime = append(diffPrime, s.Quantities.InvariantsPrime.Difference)
	}
	if len(dot) == 0 {
		return
	}

	floats.Sub(dotPrime, dot)
	floats.Sub(diffPrime, diff)
	r.DotDrift = floats.Norm(dotPrime, math.Inf(1))
	r.DifferenceDrift = floats.Norm(diffPrime, math.Inf(1))
}
