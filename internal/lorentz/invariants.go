package lorentz

import (
	"go-hep.org/x/hep/fmom"

	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Invariants are the two Lorentz scalars of the electromagnetic field.
type Invariants struct {
	Dot        float64 // E·B
	Difference float64 // |E|² - |B|²
}

// FieldInvariants computes E·B and |E|² - |B|².
func FieldInvariants(e, b vecmath.Vec3) Invariants {
	return Invariants{
		Dot:        e.Dot(b),
		Difference: e.LengthSq() - b.LengthSq(),
	}
}

// FourVector is an energy-momentum four-vector (px, py, pz, E).
type FourVector = fmom.PxPyPzE

// FourMomentum returns mγ(u, 1) for a particle of mass m moving with velocity u.
func FourMomentum(u vecmath.Vec3, mass float64) FourVector {
	e := Gamma(u.Length()) * mass
	return fmom.NewPxPyPzE(e*u.X, e*u.Y, e*u.Z, e)
}
