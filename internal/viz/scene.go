package viz

import (
	"math"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Kind is the physical quantity an arrow shows.
type Kind int

const (
	KindBoost Kind = iota
	KindE
	KindB
	KindPoynting
	KindVelocity
	KindForce
	KindAccel
)

// Arrow is one vector drawn from the origin.
type Arrow struct {
	Kind   Kind
	Primed bool
	Label  string
	Vec    vecmath.Vec3
}

// Arrows lists the vectors the display toggles make visible. The boost
// velocity is always shown. Primed-frame vectors are added next to their
// unprimed counterparts when Display.Primed is set. Non-finite vectors are
// left out; the panel reports them.
func Arrows(s state.State, q lorentz.Quantities) []Arrow {
	d := s.Display
	out := []Arrow{{Kind: KindBoost, Label: "v", Vec: q.BoostVelocity}}
	add := func(show bool, k Kind, label string, v, vp vecmath.Vec3) {
		if !show {
			return
		}
		out = append(out, Arrow{Kind: k, Label: label, Vec: v})
		if d.Primed {
			out = append(out, Arrow{Kind: k, Primed: true, Label: label + "'", Vec: vp})
		}
	}
	add(d.E, KindE, "E", s.Field.E, q.EPrime)
	add(d.B, KindB, "B", s.Field.B, q.BPrime)
	add(d.Poynting, KindPoynting, "S", q.Poynting, q.PoyntingPrime)
	add(d.Particle, KindVelocity, "u", q.ParticleVelocity, q.ParticleVelocityPrime)
	add(d.Force, KindForce, "F", q.LorentzForce, q.LorentzForcePrime)
	add(d.Acceleration, KindAccel, "a", q.ParticleAcceleration, q.ParticleAccelerationPrime)

	finite := out[:0]
	for _, a := range out {
		if a.Vec.IsFinite() {
			finite = append(finite, a)
		}
	}
	return finite
}

// Extent returns the length of the longest arrow, or 1 when all arrows are
// zero.
func Extent(arrows []Arrow) float64 {
	var m float64
	for _, a := range arrows {
		m = math.Max(m, a.Vec.Length())
	}
	if m == 0 {
		return 1
	}
	return m
}

// Camera is an orthographic view of the scene. Yaw turns about the y axis
// (up), then Pitch tilts toward the viewer.
type Camera struct {
	Yaw   float64
	Pitch float64
}

// DefaultCamera returns the isometric view.
func DefaultCamera() Camera {
	return Camera{Yaw: math.Pi / 4, Pitch: math.Atan(1 / math.Sqrt2)}
}

func (c *Camera) Rotate(delta float64) { c.Yaw = vecmath.WrapAngle(c.Yaw + delta) }

// Project maps p to screen coordinates with x to the right and y up.
func (c Camera) Project(p vecmath.Vec3) (x, y float64) {
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	x = p.X*cy - p.Z*sy
	z := p.X*sy + p.Z*cy
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	y = p.Y*cp + z*sp
	return x, y
}

// DrawScene draws axes and arrows scaled so the longest arrow reaches the
// edge of the canvas. Arrow i is drawn with InkArrow+i.
func DrawScene(cv *Canvas, arrows []Arrow, cam Camera) {
	w, h := cv.Width(), cv.Height()
	cx, cy := w/2, h/2
	radius := float64(min(w, h))/2 - 2
	if radius <= 0 {
		return
	}
	scale := radius / Extent(arrows)
	screen := func(p vecmath.Vec3) (int, int) {
		x, y := cam.Project(p)
		return cx + int(math.Round(x)), cy - int(math.Round(y))
	}

	for i, axis := range []string{"x", "y", "z"} {
		tip := vecmath.Vec3{}.With(i, radius*0.9)
		x1, y1 := screen(tip)
		x0, y0 := screen(tip.Neg())
		cv.Line(x0, y0, x1, y1, InkAxis)
		cv.Label(x1, y1, axis, InkAxis)
	}
	for i, a := range arrows {
		x1, y1 := screen(a.Vec.Scale(scale))
		ink := InkArrow + Ink(i)
		cv.Arrow(cx, cy, x1, y1, ink)
		cv.Label(x1+2, y1, a.Label, ink)
	}
}
