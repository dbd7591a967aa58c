// Package persist saves and restores input state.
//
// The canonical serialized form is a URL query string with one named field
// per number or toggle, so a state can be shared as a link, passed on the
// command line or stored as a single text column. Decoding is per field:
// a bad value only costs that field, never the whole state.
package persist

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/san-kum/fieldboost/internal/state"
)

type numberField struct {
	name string
	ptr  func(*state.State) *float64
}

type toggleField struct {
	name string
	ptr  func(*state.State) *bool
}

var numberFields = []numberField{
	{"ex", func(s *state.State) *float64 { return &s.Field.E.X }},
	{"ey", func(s *state.State) *float64 { return &s.Field.E.Y }},
	{"ez", func(s *state.State) *float64 { return &s.Field.E.Z }},
	{"bx", func(s *state.State) *float64 { return &s.Field.B.X }},
	{"by", func(s *state.State) *float64 { return &s.Field.B.Y }},
	{"bz", func(s *state.State) *float64 { return &s.Field.B.Z }},
	{"vr", func(s *state.State) *float64 { return &s.Boost.Velocity.R }},
	{"vphi", func(s *state.State) *float64 { return &s.Boost.Velocity.Phi }},
	{"vtheta", func(s *state.State) *float64 { return &s.Boost.Velocity.Theta }},
	{"ur", func(s *state.State) *float64 { return &s.Particle.Velocity.R }},
	{"uphi", func(s *state.State) *float64 { return &s.Particle.Velocity.Phi }},
	{"utheta", func(s *state.State) *float64 { return &s.Particle.Velocity.Theta }},
	{"q", func(s *state.State) *float64 { return &s.Particle.Charge }},
	{"m", func(s *state.State) *float64 { return &s.Particle.Mass }},
}

var toggleFields = []toggleField{
	{"showE", func(s *state.State) *bool { return &s.Display.E }},
	{"showB", func(s *state.State) *bool { return &s.Display.B }},
	{"showS", func(s *state.State) *bool { return &s.Display.Poynting }},
	{"showPrime", func(s *state.State) *bool { return &s.Display.Primed }},
	{"showParticle", func(s *state.State) *bool { return &s.Display.Particle }},
	{"showForce", func(s *state.State) *bool { return &s.Display.Force }},
	{"showAccel", func(s *state.State) *bool { return &s.Display.Acceleration }},
}

// FieldNames lists every query field in encoding order.
func FieldNames() []string {
	names := make([]string, 0, len(numberFields)+len(toggleFields))
	for _, f := range numberFields {
		names = append(names, f.name)
	}
	for _, f := range toggleFields {
		names = append(names, f.name)
	}
	return names
}

// Encode writes every field of s. Numbers use the shortest representation
// that parses back to the same float64.
func Encode(s state.State) url.Values {
	v := make(url.Values, len(numberFields)+len(toggleFields))
	for _, f := range numberFields {
		v.Set(f.name, strconv.FormatFloat(*f.ptr(&s), 'g', -1, 64))
	}
	for _, f := range toggleFields {
		v.Set(f.name, strconv.FormatBool(*f.ptr(&s)))
	}
	return v
}

// EncodeQuery is Encode rendered as a query string.
func EncodeQuery(s state.State) string {
	return Encode(s).Encode()
}

// Decode overlays the fields present in v onto base. Fields that are
// missing keep the base value; fields that fail to parse to a finite
// number (or a boolean, for toggles) are skipped and reported.
// The result is not clamped; pass it through a state.Policy or Store.
func Decode(v url.Values, base state.State) (state.State, []FieldWarning) {
	s := base
	var warnings []FieldWarning

	for _, f := range numberFields {
		if !v.Has(f.name) {
			continue
		}
		raw := v.Get(f.name)
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			warnings = append(warnings, FieldWarning{Field: f.name, Value: raw, Err: fmt.Errorf("%w: %v", ErrBadField, err)})
			continue
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			warnings = append(warnings, FieldWarning{Field: f.name, Value: raw, Err: fmt.Errorf("%w: not finite", ErrBadField)})
			continue
		}
		*f.ptr(&s) = x
	}

	for _, f := range toggleFields {
		if !v.Has(f.name) {
			continue
		}
		raw := v.Get(f.name)
		b, err := strconv.ParseBool(raw)
		if err != nil {
			warnings = append(warnings, FieldWarning{Field: f.name, Value: raw, Err: fmt.Errorf("%w: %v", ErrBadField, err)})
			continue
		}
		*f.ptr(&s) = b
	}

	return s, warnings
}

// DecodeQuery parses a raw query string (with or without the leading '?')
// and decodes it onto base.
func DecodeQuery(query string, base state.State) (state.State, []FieldWarning, error) {
	if len(query) > 0 && query[0] == '?' {
		query = query[1:]
	}
	v, err := url.ParseQuery(query)
	if err != nil {
		return base, nil, fmt.Errorf("parse query: %w", err)
	}
	s, warnings := Decode(v, base)
	return s, warnings, nil
}
