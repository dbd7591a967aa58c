// Package vecmath provides the value-type vectors used by the field transform.
//
// Two representations are used throughout fieldboost:
//
//   - [Vec3]: Cartesian (x, y, z)
//   - [Spherical]: (r, φ, θ) with φ the polar angle measured from the +y
//     axis and θ the azimuth in the z-x plane
//
// The spherical convention matches the one used by the 3D scene the
// quantities are drawn in, so that (r, π/2, π/2) points along +x:
//
//	x = r·sin(φ)·sin(θ)
//	y = r·cos(φ)
//	z = r·sin(φ)·cos(θ)
//
// All operations return new values; nothing is mutated in place.
package vecmath
