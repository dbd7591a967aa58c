package vecmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a Cartesian 3-vector.
type Vec3 struct{ X, Y, Z float64 }

// New creates a vector from its components.
func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromR3(p r3.Vec) Vec3 { return Vec3{X: p.X, Y: p.Y, Z: p.Z} }

func (v Vec3) Add(o Vec3) Vec3 { return fromR3(r3.Add(v.vec(), o.vec())) }
func (v Vec3) Sub(o Vec3) Vec3 { return fromR3(r3.Sub(v.vec(), o.vec())) }

// Scale multiplies every component by k.
func (v Vec3) Scale(k float64) Vec3 { return fromR3(r3.Scale(k, v.vec())) }

func (v Vec3) Neg() Vec3 { return v.Scale(-1) }

func (v Vec3) Dot(o Vec3) float64 { return r3.Dot(v.vec(), o.vec()) }

func (v Vec3) Cross(o Vec3) Vec3 { return fromR3(r3.Cross(v.vec(), o.vec())) }

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return r3.Norm(v.vec()) }

// LengthSq returns the squared Euclidean norm.
func (v Vec3) LengthSq() float64 { return r3.Norm2(v.vec()) }

// Normalize returns the unit vector in the direction of v. The zero vector
// is returned unchanged instead of the NaN vector r3.Unit would produce.
func (v Vec3) Normalize() Vec3 {
	if v.LengthSq() == 0 {
		return Vec3{}
	}
	return fromR3(r3.Unit(v.vec()))
}

// Component returns the i-th component (0=x, 1=y, 2=z).
func (v Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vecmath: component index %d out of range", i))
}

// With returns a copy of v with the i-th component replaced.
func (v Vec3) With(i int, val float64) Vec3 {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		panic(fmt.Sprintf("vecmath: component index %d out of range", i))
	}
	return v
}

func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v.Array() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every component of v and o differs by at most tol.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	d := v.Sub(o)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}
