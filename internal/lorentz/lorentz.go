package lorentz

import (
	"math"

	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Input is one snapshot of the unprimed-frame state.
type Input struct {
	BoostVelocity    vecmath.Spherical
	EField           vecmath.Vec3
	BField           vecmath.Vec3
	ParticleVelocity vecmath.Spherical
	ParticleCharge   float64
	ParticleMass     float64
}

// Quantities holds everything derived from an Input. Fields suffixed Prime
// are measured in the boosted frame.
type Quantities struct {
	BoostVelocity vecmath.Vec3
	BoostUnit     vecmath.Vec3
	BoostRapidity float64
	BoostGamma    float64

	EPrime vecmath.Vec3
	BPrime vecmath.Vec3

	ParticleVelocity               vecmath.Vec3
	ParticleVelocityPrime          vecmath.Vec3
	ParticleVelocityPrimeSpherical vecmath.Spherical
	ParticleGamma                  float64
	ParticleGammaPrime             float64

	LorentzForce      vecmath.Vec3
	LorentzForcePrime vecmath.Vec3

	ParticleAcceleration      vecmath.Vec3
	ParticleAccelerationPrime vecmath.Vec3

	Poynting      vecmath.Vec3
	PoyntingPrime vecmath.Vec3

	Invariants      Invariants
	InvariantsPrime Invariants

	Momentum      FourVector
	MomentumPrime FourVector
}

// boost holds the hyperbolic factors of a boost along a unit direction.
type boost struct {
	unit vecmath.Vec3
	eta  float64
	ch   float64
	sh   float64
	sh2  float64 // ch - 1, evaluated as 2 sinh²(η/2)
}

func newBoost(v vecmath.Vec3) boost {
	eta := Rapidity(v.Length())
	half := math.Sinh(eta / 2)
	return boost{
		unit: v.Normalize(),
		eta:  eta,
		ch:   math.Cosh(eta),
		sh:   math.Sinh(eta),
		sh2:  2 * half * half,
	}
}

// Compute derives every primed and invariant quantity from in.
func Compute(in Input) Quantities {
	v := in.BoostVelocity.Cartesian()
	bst := newBoost(v)

	ePrime, bPrime := bst.fields(in.EField, in.BField)

	u := in.ParticleVelocity.Cartesian()
	uPrime := bst.velocity(u)

	f := LorentzForce(in.ParticleCharge, in.EField, in.BField, u)
	fPrime := LorentzForce(in.ParticleCharge, ePrime, bPrime, uPrime)

	return Quantities{
		BoostVelocity: v,
		BoostUnit:     bst.unit,
		BoostRapidity: bst.eta,
		BoostGamma:    bst.ch,

		EPrime: ePrime,
		BPrime: bPrime,

		ParticleVelocity:               u,
		ParticleVelocityPrime:          uPrime,
		ParticleVelocityPrimeSpherical: uPrime.Spherical(),
		ParticleGamma:                  Gamma(u.Length()),
		ParticleGammaPrime:             Gamma(uPrime.Length()),

		LorentzForce:      f,
		LorentzForcePrime: fPrime,

		ParticleAcceleration:      ProperAcceleration(f, u, in.ParticleMass),
		ParticleAccelerationPrime: ProperAcceleration(fPrime, uPrime, in.ParticleMass),

		Poynting:      Poynting(in.EField, in.BField),
		PoyntingPrime: Poynting(ePrime, bPrime),

		Invariants:      FieldInvariants(in.EField, in.BField),
		InvariantsPrime: FieldInvariants(ePrime, bPrime),

		Momentum:      FourMomentum(u, in.ParticleMass),
		MomentumPrime: FourMomentum(uPrime, in.ParticleMass),
	}
}

// TransformFields returns E and B as measured in a frame moving with
// velocity v relative to the frame e and b are given in.
func TransformFields(v, e, b vecmath.Vec3) (vecmath.Vec3, vecmath.Vec3) {
	return newBoost(v).fields(e, b)
}

// TransformVelocity returns the velocity u as measured in a frame moving
// with velocity v.
func TransformVelocity(v, u vecmath.Vec3) vecmath.Vec3 {
	return newBoost(v).velocity(u)
}

func (bst boost) fields(e, b vecmath.Vec3) (vecmath.Vec3, vecmath.Vec3) {
	crossE := bst.unit.Cross(e)
	crossB := bst.unit.Cross(b)
	dotE := bst.unit.Dot(e)
	dotB := bst.unit.Dot(b)

	ePrime := e.Scale(bst.ch).
		Add(crossB.Scale(bst.sh)).
		Sub(bst.unit.Scale(bst.sh2 * dotE))
	bPrime := b.Scale(bst.ch).
		Sub(crossE.Scale(bst.sh)).
		Sub(bst.unit.Scale(bst.sh2 * dotB))
	return ePrime, bPrime
}

func (bst boost) velocity(u vecmath.Vec3) vecmath.Vec3 {
	dotU := bst.unit.Dot(u)
	num := u.Add(bst.unit.Scale(bst.sh2*dotU - bst.sh))
	return num.Scale(1 / (bst.ch - bst.sh*dotU))
}

// LorentzForce returns q(E + u×B).
func LorentzForce(q float64, e, b, u vecmath.Vec3) vecmath.Vec3 {
	return e.Add(u.Cross(b)).Scale(q)
}

// ProperAcceleration returns (F - (F·u)u) / (γm), the coordinate
// acceleration of a particle of mass m moving with velocity u under force f.
func ProperAcceleration(f, u vecmath.Vec3, mass float64) vecmath.Vec3 {
	energy := math.Cosh(Rapidity(u.Length())) * mass
	return f.Sub(u.Scale(f.Dot(u))).Scale(1 / energy)
}

// Poynting returns E×B.
func Poynting(e, b vecmath.Vec3) vecmath.Vec3 {
	return e.Cross(b)
}

// Rapidity returns atanh(speed). It is infinite at speed 1 and NaN beyond.
func Rapidity(speed float64) float64 {
	return math.Atanh(speed)
}

// Gamma returns the Lorentz factor cosh(atanh(speed)).
func Gamma(speed float64) float64 {
	return math.Cosh(Rapidity(speed))
}

// IsFinite reports whether every derived vector and scalar is finite.
func (q Quantities) IsFinite() bool {
	vectors := []vecmath.Vec3{
		q.BoostVelocity, q.BoostUnit, q.EPrime, q.BPrime,
		q.ParticleVelocity, q.ParticleVelocityPrime,
		q.LorentzForce, q.LorentzForcePrime,
		q.ParticleAcceleration, q.ParticleAccelerationPrime,
		q.Poynting, q.PoyntingPrime,
	}
	for _, v := range vectors {
		if !v.IsFinite() {
			return false
		}
	}
	scalars := []float64{
		q.BoostRapidity, q.BoostGamma, q.ParticleGamma, q.ParticleGammaPrime,
		q.Invariants.Dot, q.Invariants.Difference,
		q.InvariantsPrime.Dot, q.InvariantsPrime.Difference,
	}
	for _, s := range scalars {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return q.ParticleVelocityPrimeSpherical.IsFinite()
}
