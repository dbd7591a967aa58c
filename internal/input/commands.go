package input

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// Command is a user action that edits the state. Apply never leaves the
// store holding an out-of-range value: text that fails to parse falls back
// to 0 and the store's clamp policy handles the rest.
type Command interface {
	Apply(st *state.Store) error
}

// Vector names the Cartesian vectors that can be edited.
type Vector int

const (
	EField Vector = iota
	BField
)

// SetComponent sets one Cartesian component of E or B from text.
type SetComponent struct {
	Vector    Vector
	Component int // 0=x, 1=y, 2=z
	Text      string
}

func (c SetComponent) Apply(st *state.Store) error {
	if c.Component < 0 || c.Component > 2 {
		return fmt.Errorf("%w: component %d", ErrUnknownField, c.Component)
	}
	v, err := ParseNumber(c.Text, 0)
	st.Update(func(s *state.State) {
		switch c.Vector {
		case EField:
			s.Field.E = s.Field.E.With(c.Component, v)
		case BField:
			s.Field.B = s.Field.B.With(c.Component, v)
		}
	})
	return err
}

// Target names the spherical velocities that can be edited.
type Target int

const (
	BoostVelocity Target = iota
	ParticleVelocity
)

// SetSpherical sets a velocity from a magnitude and two angles in degrees.
// Empty text leaves that coordinate unchanged.
type SetSpherical struct {
	Target   Target
	R        string
	PhiDeg   string
	ThetaDeg string
}

func (c SetSpherical) Apply(st *state.Store) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	st.Update(func(s *state.State) {
		v := &s.Boost.Velocity
		if c.Target == ParticleVelocity {
			v = &s.Particle.Velocity
		}
		if c.R != "" {
			r, err := ParseNumber(c.R, 0)
			keep(err)
			v.R = r
		}
		if c.PhiDeg != "" {
			phi, err := ParseDegrees(c.PhiDeg, 0)
			keep(err)
			v.Phi = phi
		}
		if c.ThetaDeg != "" {
			theta, err := ParseDegrees(c.ThetaDeg, 0)
			keep(err)
			v.Theta = theta
		}
	})
	return firstErr
}

// SetCharge sets the particle charge. Any finite value is accepted.
type SetCharge struct{ Text string }

func (c SetCharge) Apply(st *state.Store) error {
	q, err := ParseNumber(c.Text, 0)
	st.Update(func(s *state.State) { s.Particle.Charge = q })
	return err
}

// SetMass sets the particle mass; the store raises non-positive values to
// its minimum.
type SetMass struct{ Text string }

func (c SetMass) Apply(st *state.Store) error {
	m, err := ParseNumber(c.Text, 0)
	st.Update(func(s *state.State) { s.Particle.Mass = m })
	return err
}

// FieldNames lists the names accepted by SetField and Nudge.
var FieldNames = []string{"ex", "ey", "ez", "bx", "by", "bz", "v", "vphi", "vtheta", "u", "uphi", "utheta", "q", "m"}

// SetField sets one scalar by its short name. Angles are in degrees.
type SetField struct {
	Name string
	Text string
}

func (c SetField) Apply(st *state.Store) error {
	return fieldCommand(c.Name, c.Text).Apply(st)
}

// fieldAliases maps the query-string and sweep spellings to FieldNames.
var fieldAliases = map[string]string{
	"vr":             "v",
	"speed":          "v",
	"phi":            "vphi",
	"theta":          "vtheta",
	"ur":             "u",
	"particle-speed": "u",
	"charge":         "q",
	"mass":           "m",
}

// CanonicalField resolves an alias to its entry in FieldNames. Other names
// are returned unchanged.
func CanonicalField(name string) string {
	if canonical, ok := fieldAliases[name]; ok {
		return canonical
	}
	return name
}

func fieldCommand(name, text string) Command {
	switch CanonicalField(name) {
	case "ex", "ey", "ez":
		return SetComponent{Vector: EField, Component: int(name[1] - 'x'), Text: text}
	case "bx", "by", "bz":
		return SetComponent{Vector: BField, Component: int(name[1] - 'x'), Text: text}
	case "v":
		return SetSpherical{Target: BoostVelocity, R: text}
	case "vphi":
		return SetSpherical{Target: BoostVelocity, PhiDeg: text}
	case "vtheta":
		return SetSpherical{Target: BoostVelocity, ThetaDeg: text}
	case "u":
		return SetSpherical{Target: ParticleVelocity, R: text}
	case "uphi":
		return SetSpherical{Target: ParticleVelocity, PhiDeg: text}
	case "utheta":
		return SetSpherical{Target: ParticleVelocity, ThetaDeg: text}
	case "q":
		return SetCharge{Text: text}
	case "m":
		return SetMass{Text: text}
	}
	return unknownField(name)
}

type unknownField string

func (u unknownField) Apply(*state.Store) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, string(u))
}

// FlipBoost reverses the boost direction, keeping its speed.
type FlipBoost struct{}

func (FlipBoost) Apply(st *state.Store) error {
	st.Update(func(s *state.State) { s.Boost.Velocity = s.Boost.Velocity.Antipode() })
	return nil
}

// Reset restores the start-up scenario, keeping display toggles.
type Reset struct{}

func (Reset) Apply(st *state.Store) error {
	st.Update(func(s *state.State) {
		display := s.Display
		*s = state.Default()
		s.Display = display
	})
	return nil
}

// LoadPreset applies a named preset.
type LoadPreset struct{ Name string }

func (c LoadPreset) Apply(st *state.Store) error {
	next, err := ApplyPreset(st.Snapshot(), c.Name)
	if err != nil {
		return err
	}
	st.Replace(next)
	return nil
}

// ToggleNames lists the display toggles by their short names.
var ToggleNames = []string{"e", "b", "poynting", "primed", "particle", "force", "acceleration"}

// Toggle flips one display toggle by name.
type Toggle struct{ Name string }

func (c Toggle) Apply(st *state.Store) error {
	var err error
	st.Update(func(s *state.State) {
		flag := ToggleFlag(&s.Display, c.Name)
		if flag == nil {
			err = fmt.Errorf("%w: toggle %q", ErrUnknownField, c.Name)
			return
		}
		*flag = !*flag
	})
	return err
}

// ToggleFlag returns a pointer to the named toggle in d, or nil.
func ToggleFlag(d *state.Display, name string) *bool {
	switch strings.ToLower(name) {
	case "e":
		return &d.E
	case "b":
		return &d.B
	case "poynting", "s":
		return &d.Poynting
	case "primed", "prime":
		return &d.Primed
	case "particle", "u":
		return &d.Particle
	case "force", "f":
		return &d.Force
	case "acceleration", "accel", "a":
		return &d.Acceleration
	}
	return nil
}

// Nudge adds delta to a named scalar of the state; it backs the arrow-key
// editing in the terminal UI. Angles (vphi, vtheta, uphi, utheta) take
// delta in degrees.
func Nudge(st *state.Store, field string, delta float64) error {
	var err error
	field = CanonicalField(field)
	st.Update(func(s *state.State) {
		switch field {
		case "ex", "ey", "ez":
			s.Field.E = nudge(s.Field.E, field[1], delta)
		case "bx", "by", "bz":
			s.Field.B = nudge(s.Field.B, field[1], delta)
		case "v":
			s.Boost.Velocity.R += delta
		case "vphi":
			s.Boost.Velocity.Phi = math.Mod(s.Boost.Velocity.Phi+Radians(delta), 2*math.Pi)
		case "vtheta":
			s.Boost.Velocity.Theta = vecmath.WrapAngle(s.Boost.Velocity.Theta + Radians(delta))
		case "u":
			s.Particle.Velocity.R += delta
		case "uphi":
			s.Particle.Velocity.Phi = math.Mod(s.Particle.Velocity.Phi+Radians(delta), 2*math.Pi)
		case "utheta":
			s.Particle.Velocity.Theta = vecmath.WrapAngle(s.Particle.Velocity.Theta + Radians(delta))
		case "q":
			s.Particle.Charge += delta
		case "m":
			s.Particle.Mass += delta
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	})
	return err
}

func nudge(v vecmath.Vec3, axis byte, delta float64) vecmath.Vec3 {
	i := int(axis - 'x')
	return v.With(i, v.Component(i)+delta)
}
