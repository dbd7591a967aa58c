package lorentz

import (
	"math"
	"testing"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/fieldboost/internal/vecmath"
)

const tol = 1e-9

func referenceInput() Input {
	return Input{
		BoostVelocity:    vecmath.NewSpherical(0.5, math.Pi/2, math.Pi/2),
		EField:           vecmath.New(1, 1, 1),
		BField:           vecmath.New(-1, -1, -1),
		ParticleVelocity: vecmath.NewSpherical(0.5, math.Pi/4, -math.Pi/4),
		ParticleCharge:   1,
		ParticleMass:     1,
	}
}

func TestCompute_Golden(t *testing.T) {
	q := Compute(referenceInput())

	tests := []struct {
		name string
		got  vecmath.Vec3
		want vecmath.Vec3
	}{
		{"boost", q.BoostVelocity, vecmath.New(0.5, 0, 0)},
		{"boost unit", q.BoostUnit, vecmath.New(1, 0, 0)},
		{"ePrime", q.EPrime, vecmath.New(1.0, 1.7320508075688772, 0.5773502691896258)},
		{"bPrime", q.BPrime, vecmath.New(-1.0, -0.5773502691896258, -1.7320508075688772)},
		{"u", q.ParticleVelocity, vecmath.New(-0.25, 0.3535533905932738, 0.25)},
		{"uPrime", q.ParticleVelocityPrime, vecmath.New(-0.6666666666666667, 0.2721655269759087, 0.19245008972987526)},
		{"force", q.LorentzForce, vecmath.New(0.8964466094067263, 0.5, 1.6035533905932737)},
		{"forcePrime", q.LorentzForcePrime, vecmath.New(0.6397065903200795, 0.3849001794597502, 1.2344159756252853)},
		{"accel", q.ParticleAcceleration, vecmath.New(0.8528920913446255, 0.3247595264191645, 1.3121714181164712)},
		{"accelPrime", q.ParticleAccelerationPrime, vecmath.New(0.3890706003180423, 0.2718687934546699, 0.8337405665443864)},
		{"poynting", q.Poynting, vecmath.New(0, 0, 0)},
		{"poyntingPrime", q.PoyntingPrime, vecmath.New(-2.666666666666666, 1.1547005383792515, 1.1547005383792515)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(tt.want, tol) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if !q.IsFinite() {
		t.Error("reference scenario produced non-finite quantities")
	}
	if got := q.ParticleVelocityPrimeSpherical.Cartesian(); !got.ApproxEqual(q.ParticleVelocityPrime, tol) {
		t.Errorf("primed spherical velocity %v does not match Cartesian %v", got, q.ParticleVelocityPrime)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := referenceInput()
	if Compute(in) != Compute(in) {
		t.Error("repeated calls returned different quantities")
	}
}

func TestCompute_ZeroBoostIdentity(t *testing.T) {
	in := referenceInput()
	in.BoostVelocity = vecmath.Spherical{}

	q := Compute(in)
	if q.BoostUnit != (vecmath.Vec3{}) {
		t.Errorf("zero boost unit = %v, want zero vector", q.BoostUnit)
	}
	if q.EPrime != in.EField {
		t.Errorf("EPrime = %v, want %v", q.EPrime, in.EField)
	}
	if q.BPrime != in.BField {
		t.Errorf("BPrime = %v, want %v", q.BPrime, in.BField)
	}
	if q.ParticleVelocityPrime != q.ParticleVelocity {
		t.Errorf("uPrime = %v, want %v", q.ParticleVelocityPrime, q.ParticleVelocity)
	}
	if q.LorentzForcePrime != q.LorentzForce {
		t.Errorf("forcePrime = %v, want %v", q.LorentzForcePrime, q.LorentzForce)
	}
	if q.BoostGamma != 1 || q.BoostRapidity != 0 {
		t.Errorf("gamma=%v rapidity=%v, want 1 and 0", q.BoostGamma, q.BoostRapidity)
	}
}

func TestCompute_ParticleAtRest(t *testing.T) {
	in := referenceInput()
	in.ParticleVelocity = vecmath.Spherical{}

	q := Compute(in)
	if !q.IsFinite() {
		t.Fatal("particle at rest produced non-finite quantities")
	}
	if !q.ParticleAcceleration.ApproxEqual(q.LorentzForce, tol) {
		t.Errorf("at rest with unit mass acceleration %v should equal force %v", q.ParticleAcceleration, q.LorentzForce)
	}
	want := vecmath.New(-0.5, 0, 0)
	if !q.ParticleVelocityPrime.ApproxEqual(want, tol) {
		t.Errorf("uPrime = %v, want %v", q.ParticleVelocityPrime, want)
	}
}

func TestCompute_NonFinitePropagation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Input)
	}{
		{"boost at light speed", func(in *Input) { in.BoostVelocity.R = 1 }},
		{"boost above light speed", func(in *Input) { in.BoostVelocity.R = 1.5 }},
		{"particle at light speed", func(in *Input) { in.ParticleVelocity.R = 1 }},
		{"zero mass", func(in *Input) { in.ParticleMass = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mod(&in)
			if Compute(in).IsFinite() {
				t.Error("expected non-finite quantities")
			}
		})
	}
}

func TestRapidityAndGamma(t *testing.T) {
	tests := []struct {
		speed, gamma float64
	}{
		{0, 1},
		{0.6, 1.25},
		{0.8, 5.0 / 3.0},
	}

	for _, tt := range tests {
		if got := Gamma(tt.speed); math.Abs(got-tt.gamma) > 1e-12 {
			t.Errorf("Gamma(%v) = %v, want %v", tt.speed, got, tt.gamma)
		}
		if got := math.Tanh(Rapidity(tt.speed)); math.Abs(got-tt.speed) > 1e-12 {
			t.Errorf("tanh(Rapidity(%v)) = %v", tt.speed, got)
		}
	}
}

func TestFourMomentum_MatchesBoostedFourVector(t *testing.T) {
	const mass = 2.0
	v := vecmath.New(0.3, -0.2, 0.4)
	u := vecmath.New(-0.1, 0.5, 0.2)

	p := FourMomentum(u, mass)
	if math.Abs(p.M()-mass) > 1e-9 {
		t.Errorf("invariant mass = %v, want %v", p.M(), mass)
	}

	// The primed frame moves with +v, so its four-vectors are boosted by -v.
	boosted := fmom.Boost(&p, r3.Vec{X: -v.X, Y: -v.Y, Z: -v.Z})

	want := FourMomentum(TransformVelocity(v, u), mass)
	got := vecmath.New(boosted.Px(), boosted.Py(), boosted.Pz())
	if !got.ApproxEqual(vecmath.New(want.Px(), want.Py(), want.Pz()), 1e-9) {
		t.Errorf("boosted momentum %v, want (%v, %v, %v)", got, want.Px(), want.Py(), want.Pz())
	}
	if math.Abs(boosted.E()-want.E()) > 1e-9 {
		t.Errorf("boosted energy %v, want %v", boosted.E(), want.E())
	}
}

func BenchmarkCompute(b *testing.B) {
	in := referenceInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compute(in)
	}
}
