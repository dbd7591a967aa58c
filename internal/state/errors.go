package state

import "errors"

var (
	// ErrInvalidPolicy indicates clamp limits that cannot keep the engine's
	// preconditions (0 < MaxSpeed < 1, MinMass > 0).
	ErrInvalidPolicy = errors.New("state: invalid clamp policy")
)
