package vecmath

import (
	"fmt"
	"math"
)

// Spherical is a vector in (radius, polar, azimuth) form. Phi is measured
// from the +y axis, Theta around it starting at +z.
type Spherical struct {
	R     float64
	Phi   float64
	Theta float64
}

// NewSpherical creates a spherical vector.
func NewSpherical(r, phi, theta float64) Spherical {
	return Spherical{R: r, Phi: phi, Theta: theta}
}

// Cartesian converts s to Cartesian coordinates.
func (s Spherical) Cartesian() Vec3 {
	sinPhiR := math.Sin(s.Phi) * s.R
	return Vec3{
		X: sinPhiR * math.Sin(s.Theta),
		Y: math.Cos(s.Phi) * s.R,
		Z: sinPhiR * math.Cos(s.Theta),
	}
}

// Spherical converts v to spherical form. The zero vector maps to the zero
// spherical vector (both angles 0).
func (v Vec3) Spherical() Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		R:     r,
		Theta: math.Atan2(v.X, v.Z),
		Phi:   math.Acos(clamp(v.Y/r, -1, 1)),
	}
}

// Antipode returns the vector with the same magnitude pointing the opposite
// way, keeping Phi in [0, π] and Theta in (-π, π].
func (s Spherical) Antipode() Spherical {
	return Spherical{
		R:     s.R,
		Phi:   math.Pi - s.Phi,
		Theta: WrapAngle(s.Theta + math.Pi),
	}
}

// WithRadius returns a copy of s with a different magnitude.
func (s Spherical) WithRadius(r float64) Spherical {
	s.R = r
	return s
}

func (s Spherical) IsFinite() bool {
	for _, c := range [3]float64{s.R, s.Phi, s.Theta} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (s Spherical) String() string {
	return fmt.Sprintf("(r=%.6g, φ=%.6g, θ=%.6g)", s.R, s.Phi, s.Theta)
}

// WrapAngle maps an angle into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
