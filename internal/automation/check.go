package automation

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// CheckConfig sets up a randomized consistency check.
type CheckConfig struct {
	Trials    int
	Seed      int64 // 0 picks a time-based seed
	Tolerance float64
	// MaxSpeed bounds the sampled boost and particle speeds.
	MaxSpeed float64
	MinMass  float64
}

// Failure is the first trial that broke a property.
type Failure struct {
	Trial  int
	Input  lorentz.Input
	Reason string
	Error  float64
}

// CheckResult holds the worst relative error of each property over all
// trials.
type CheckResult struct {
	Trials         int
	Failures       int
	Seed           int64
	WorstRoundTrip float64 // boosting back by -v recovers E, B and u
	WorstDot       float64 // E·B is frame independent
	WorstDiff      float64 // E²-B² is frame independent
	First          *Failure
}

func (r CheckResult) Passed() bool { return r.Failures == 0 }

// DefaultCheckConfig samples speeds up to 0.95 c so γ stays moderate.
func DefaultCheckConfig(tolerance float64) CheckConfig {
	return CheckConfig{Trials: 1000, Tolerance: tolerance, MaxSpeed: 0.95, MinMass: state.DefaultMinMass}
}

func randomInput(rng *rand.Rand, cfg CheckConfig) lorentz.Input {
	vec := func() vecmath.Vec3 {
		return vecmath.New(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
	}
	vel := func() vecmath.Spherical {
		return vecmath.NewSpherical(rng.Float64()*cfg.MaxSpeed, rng.Float64()*math.Pi, rng.Float64()*2*math.Pi-math.Pi)
	}
	return lorentz.Input{
		BoostVelocity:    vel(),
		EField:           vec(),
		BField:           vec(),
		ParticleVelocity: vel(),
		ParticleCharge:   rng.Float64()*6 - 3,
		ParticleMass:     cfg.MinMass + rng.Float64()*5,
	}
}

// Check transforms random inputs and verifies the round trip and the two
// field invariants to within the relative tolerance.
func Check(ctx context.Context, cfg CheckConfig) (CheckResult, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	res := CheckResult{Seed: seed}

	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		in := randomInput(rng, cfg)
		q := lorentz.Compute(in)
		e, b, u := in.EField, in.BField, in.ParticleVelocity.Cartesian()
		scale := math.Max(1, e.LengthSq()+b.LengthSq())

		back := q.BoostVelocity.Neg()
		e2, b2 := lorentz.TransformFields(back, q.EPrime, q.BPrime)
		u2 := lorentz.TransformVelocity(back, q.ParticleVelocityPrime)
		roundTrip := math.Max(
			math.Max(e2.Sub(e).Length(), b2.Sub(b).Length())/math.Sqrt(scale),
			u2.Sub(u).Length(),
		)
		dot := math.Abs(q.InvariantsPrime.Dot-q.Invariants.Dot) / scale
		diff := math.Abs(q.InvariantsPrime.Difference-q.Invariants.Difference) / scale

		res.Trials++
		res.WorstRoundTrip = math.Max(res.WorstRoundTrip, roundTrip)
		res.WorstDot = math.Max(res.WorstDot, dot)
		res.WorstDiff = math.Max(res.WorstDiff, diff)

		reason, value := "", 0.0
		switch {
		case !q.IsFinite():
			reason, value = "non-finite output", math.NaN()
		case roundTrip > cfg.Tolerance:
			reason, value = "round trip", roundTrip
		case dot > cfg.Tolerance:
			reason, value = "E·B changed", dot
		case diff > cfg.Tolerance:
			reason, value = "E²-B² changed", diff
		}
		if reason == "" {
			continue
		}
		res.Failures++
		if res.First == nil {
			res.First = &Failure{Trial: trial, Input: in, Reason: reason, Error: value}
		}
	}
	return res, nil
}
