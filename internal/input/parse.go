// Package input turns user-entered text and actions into state updates.
//
// Numeric text is parsed leniently (surrounding space, a trailing degree
// sign for angles) but never lets NaN or infinities through; on failure
// the caller's fallback value is returned together with the error so a UI
// can keep going and surface a warning.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses text as a finite float. On failure it returns fallback
// and an error wrapping ErrSyntax or ErrNotFinite.
func ParseNumber(text string, fallback float64) (float64, error) {
	s := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback, fmt.Errorf("%w: %q", ErrNotFinite, text)
	}
	return v, nil
}

// ParseDegrees parses an angle in degrees and returns it in radians.
func ParseDegrees(text string, fallback float64) (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(text), "°")
	deg, err := ParseNumber(s, math.NaN())
	if err != nil {
		return fallback, err
	}
	return Radians(deg), nil
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
