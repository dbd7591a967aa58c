package lorentz_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

const tol = 1e-9

type fieldCase struct {
	v, e, b vecmath.Vec3
}

// randomCases draws boosts with |v| < 0.95 and fields with components in [-5, 5].
func randomCases(n int, seed int64) []fieldCase {
	rng := rand.New(rand.NewSource(seed))
	vec := func(scale float64) vecmath.Vec3 {
		return vecmath.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Scale(scale)
	}
	cases := make([]fieldCase, n)
	for i := range cases {
		dir := vec(1).Normalize()
		cases[i] = fieldCase{
			v: dir.Scale(0.95 * rng.Float64()),
			e: vec(5),
			b: vec(5),
		}
	}
	return cases
}

func beVec(want vecmath.Vec3) OmegaMatcher {
	return And(
		WithTransform(func(v vecmath.Vec3) float64 { return v.X }, BeNumerically("~", want.X, tol)),
		WithTransform(func(v vecmath.Vec3) float64 { return v.Y }, BeNumerically("~", want.Y, tol)),
		WithTransform(func(v vecmath.Vec3) float64 { return v.Z }, BeNumerically("~", want.Z, tol)),
	)
}

var _ = Describe("field transform", func() {
	cases := randomCases(200, 7)

	It("is undone by the opposite boost", func() {
		for _, c := range cases {
			ePrime, bPrime := lorentz.TransformFields(c.v, c.e, c.b)
			eBack, bBack := lorentz.TransformFields(c.v.Neg(), ePrime, bPrime)
			Expect(eBack).To(beVec(c.e), "boost %v", c.v)
			Expect(bBack).To(beVec(c.b), "boost %v", c.v)
		}
	})

	It("preserves E·B and E²-B²", func() {
		for _, c := range cases {
			ePrime, bPrime := lorentz.TransformFields(c.v, c.e, c.b)
			before := lorentz.FieldInvariants(c.e, c.b)
			after := lorentz.FieldInvariants(ePrime, bPrime)
			Expect(after.Dot).To(BeNumerically("~", before.Dot, 1e-8), "boost %v", c.v)
			Expect(after.Difference).To(BeNumerically("~", before.Difference, 1e-8), "boost %v", c.v)
		}
	})

	It("leaves the field component along the boost unchanged", func() {
		ePrime, _ := lorentz.TransformFields(vecmath.New(0.5, 0, 0), vecmath.New(2, 0, 0), vecmath.Vec3{})
		Expect(ePrime.X).To(BeNumerically("~", 2, tol))
		Expect(ePrime).To(beVec(vecmath.New(2, 0, 0)))

		for _, c := range cases {
			n := c.v.Normalize()
			ePrime, bPrime := lorentz.TransformFields(c.v, c.e, c.b)
			Expect(ePrime.Dot(n)).To(BeNumerically("~", c.e.Dot(n), 1e-8))
			Expect(bPrime.Dot(n)).To(BeNumerically("~", c.b.Dot(n), 1e-8))
		}
	})

	DescribeTable("keeps a light wave a light wave",
		func(boost vecmath.Spherical) {
			in := lorentz.Input{
				BoostVelocity: boost,
				EField:        vecmath.New(0, 1, 0),
				BField:        vecmath.New(0, 0, 1),
				ParticleMass:  1,
			}
			q := lorentz.Compute(in)

			Expect(q.Invariants.Dot).To(BeNumerically("~", 0, tol))
			Expect(q.Invariants.Difference).To(BeNumerically("~", 0, tol))
			Expect(q.EPrime.Dot(q.BPrime)).To(BeNumerically("~", 0, tol))
			Expect(q.EPrime.Length()).To(BeNumerically("~", q.BPrime.Length(), tol))
		},
		Entry("along propagation", vecmath.NewSpherical(0.6, math.Pi/2, math.Pi/2)),
		Entry("against propagation", vecmath.NewSpherical(0.6, math.Pi/2, -math.Pi/2)),
		Entry("along E", vecmath.NewSpherical(0.9, 0, 0)),
		Entry("oblique", vecmath.NewSpherical(0.75, 1.1, -2.3)),
		Entry("near light speed", vecmath.NewSpherical(0.9999, 0.3, 0.4)),
	)
})

var _ = Describe("particle kinematics", func() {
	It("is undone by the opposite boost", func() {
		for _, c := range randomCases(200, 11) {
			u := c.e.Normalize().Scale(0.9)
			back := lorentz.TransformVelocity(c.v.Neg(), lorentz.TransformVelocity(c.v, u))
			Expect(back).To(beVec(u), "boost %v", c.v)
		}
	})

	It("keeps transformed speeds below light speed", func() {
		for _, c := range randomCases(200, 13) {
			u := c.b.Normalize().Scale(0.99)
			Expect(lorentz.TransformVelocity(c.v, u).Length()).To(BeNumerically("<", 1))
		}
	})

	It("adds collinear velocities relativistically", func() {
		u := lorentz.TransformVelocity(vecmath.New(0.5, 0, 0), vecmath.New(-0.5, 0, 0))
		Expect(u).To(beVec(vecmath.New(-0.8, 0, 0)))
	})

	It("leaves the longitudinal force unchanged when boosting along the velocity", func() {
		in := lorentz.Input{
			BoostVelocity:    vecmath.NewSpherical(0.5, math.Pi/2, math.Pi/2),
			EField:           vecmath.New(1, 2, -1),
			BField:           vecmath.New(0.5, -1, 2),
			ParticleVelocity: vecmath.NewSpherical(0.3, math.Pi/2, math.Pi/2),
			ParticleCharge:   -2,
			ParticleMass:     1,
		}
		q := lorentz.Compute(in)

		Expect(q.IsFinite()).To(BeTrue())
		Expect(q.LorentzForcePrime.X).To(BeNumerically("~", q.LorentzForce.X, tol))
	})

	It("keeps the Poynting vector at zero for parallel fields", func() {
		q := lorentz.Compute(lorentz.Input{
			EField:       vecmath.New(1, 1, 1),
			BField:       vecmath.New(-1, -1, -1),
			ParticleMass: 1,
		})
		Expect(q.Poynting).To(beVec(vecmath.Vec3{}))
	})
})
