package export

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/persist"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Float is a float64 that encodes NaN and ±Inf as the strings "NaN",
// "+Inf" and "-Inf" instead of failing.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return json.Marshal(strconv.FormatFloat(x, 'g', -1, 64))
	}
	return json.Marshal(x)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var x float64
	if err := json.Unmarshal(data, &x); err == nil {
		*f = Float(x)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = Float(x)
	return nil
}

type Vector struct {
	X   Float `json:"x"`
	Y   Float `json:"y"`
	Z   Float `json:"z"`
	Mag Float `json:"mag"`
}

func vector(v vecmath.Vec3) Vector {
	return Vector{Float(v.X), Float(v.Y), Float(v.Z), Float(v.Length())}
}

// Spherical is a velocity with angles in degrees.
type Spherical struct {
	R        Float `json:"r"`
	PhiDeg   Float `json:"phi_deg"`
	ThetaDeg Float `json:"theta_deg"`
}

func spherical(s vecmath.Spherical) Spherical {
	return Spherical{Float(s.R), Float(s.Phi * 180 / math.Pi), Float(s.Theta * 180 / math.Pi)}
}

type Inputs struct {
	E        Vector    `json:"e"`
	B        Vector    `json:"b"`
	Boost    Spherical `json:"boost"`
	Particle Spherical `json:"particle"`
	Charge   Float     `json:"charge"`
	Mass     Float     `json:"mass"`
}

type Frame struct {
	E            Vector   `json:"e"`
	B            Vector   `json:"b"`
	Poynting     Vector   `json:"poynting"`
	Velocity     Vector   `json:"velocity"`
	Gamma        Float    `json:"gamma"`
	Force        Vector   `json:"force"`
	Acceleration Vector   `json:"acceleration"`
	Momentum     [4]Float `json:"momentum"` // px, py, pz, E
	EDotB        Float    `json:"e_dot_b"`
	E2MinusB2    Float    `json:"e2_minus_b2"`
}

// Outputs is the engine output in both frames.
type Outputs struct {
	BoostVelocity Vector    `json:"boost_velocity"`
	BoostUnit     Vector    `json:"boost_unit"`
	Rapidity      Float     `json:"rapidity"`
	Gamma         Float     `json:"gamma"`
	Unprimed      Frame     `json:"unprimed"`
	Primed        Frame     `json:"primed"`
	VelocityPrime Spherical `json:"velocity_prime_spherical"`
	Finite        bool      `json:"finite"`
}

// Report is one computed scenario.
type Report struct {
	Query   string  `json:"query"`
	Inputs  Inputs  `json:"inputs"`
	Outputs Outputs `json:"outputs"`
}

func momentum(p lorentz.FourVector) [4]Float {
	return [4]Float{Float(p.Px()), Float(p.Py()), Float(p.Pz()), Float(p.E())}
}

// NewOutputs converts engine output. E and B are the unprimed fields, which
// the engine output does not repeat.
func NewOutputs(e, b vecmath.Vec3, q lorentz.Quantities) Outputs {
	return Outputs{
		BoostVelocity: vector(q.BoostVelocity),
		BoostUnit:     vector(q.BoostUnit),
		Rapidity:      Float(q.BoostRapidity),
		Gamma:         Float(q.BoostGamma),
		Unprimed: Frame{
			E:            vector(e),
			B:            vector(b),
			Poynting:     vector(q.Poynting),
			Velocity:     vector(q.ParticleVelocity),
			Gamma:        Float(q.ParticleGamma),
			Force:        vector(q.LorentzForce),
			Acceleration: vector(q.ParticleAcceleration),
			Momentum:     momentum(q.Momentum),
			EDotB:        Float(q.Invariants.Dot),
			E2MinusB2:    Float(q.Invariants.Difference),
		},
		Primed: Frame{
			E:            vector(q.EPrime),
			B:            vector(q.BPrime),
			Poynting:     vector(q.PoyntingPrime),
			Velocity:     vector(q.ParticleVelocityPrime),
			Gamma:        Float(q.ParticleGammaPrime),
			Force:        vector(q.LorentzForcePrime),
			Acceleration: vector(q.ParticleAccelerationPrime),
			Momentum:     momentum(q.MomentumPrime),
			EDotB:        Float(q.InvariantsPrime.Dot),
			E2MinusB2:    Float(q.InvariantsPrime.Difference),
		},
		VelocityPrime: spherical(q.ParticleVelocityPrimeSpherical),
		Finite:        q.IsFinite(),
	}
}

func NewReport(s state.State, q lorentz.Quantities) Report {
	return Report{
		Query: persist.EncodeQuery(s),
		Inputs: Inputs{
			E:        vector(s.Field.E),
			B:        vector(s.Field.B),
			Boost:    spherical(s.Boost.Velocity),
			Particle: spherical(s.Particle.Velocity),
			Charge:   Float(s.Particle.Charge),
			Mass:     Float(s.Particle.Mass),
		},
		Outputs: NewOutputs(s.Field.E, s.Field.B, q),
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
