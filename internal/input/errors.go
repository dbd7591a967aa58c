package input

import "errors"

var (
	// ErrNotFinite indicates text that parsed to NaN or ±Inf.
	ErrNotFinite = errors.New("input: value is not a finite number")

	// ErrSyntax indicates text that is not a number at all.
	ErrSyntax = errors.New("input: not a number")

	// ErrUnknownPreset indicates a preset name with no definition.
	ErrUnknownPreset = errors.New("input: unknown preset")

	// ErrUnknownField indicates a field or toggle name that does not exist.
	ErrUnknownField = errors.New("input: unknown field")
)
