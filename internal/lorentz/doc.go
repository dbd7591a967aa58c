// Package lorentz transforms electromagnetic fields and particle kinematics
// between two inertial frames related by a single boost.
//
// The unprimed frame is the one the inputs are given in; the primed frame
// moves with the boost velocity relative to it. Units are natural (c = 1),
// so every speed must lie in [0, 1).
//
// [Compute] is the one entry point the rest of fieldboost uses. It is a
// pure function: it keeps no state, performs no validation and never
// panics. Inputs violating the speed or mass preconditions yield NaN or
// infinite components, which [Quantities.IsFinite] detects.
//
// # Example
//
//	q := lorentz.Compute(lorentz.Input{
//	    BoostVelocity:    vecmath.NewSpherical(0.5, math.Pi/2, math.Pi/2),
//	    EField:           vecmath.New(0, 1, 0),
//	    BField:           vecmath.New(0, 0, 1),
//	    ParticleVelocity: vecmath.NewSpherical(0.3, 0, 0),
//	    ParticleCharge:   1,
//	    ParticleMass:     1,
//	})
//	fmt.Println(q.EPrime, q.BPrime)
//
// # Thread Safety
//
// All functions are safe for concurrent use.
package lorentz
