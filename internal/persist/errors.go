package persist

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no scenario matched the id or name.
	ErrNotFound = errors.New("persist: scenario not found")

	// ErrEmptyName indicates a scenario save without a name.
	ErrEmptyName = errors.New("persist: scenario name is empty")

	// ErrBadField indicates a query field whose value could not be used.
	ErrBadField = errors.New("persist: unusable field value")
)

// FieldWarning reports one query field that was skipped during decoding.
type FieldWarning struct {
	Field string
	Value string
	Err   error
}

func (w FieldWarning) Error() string {
	return fmt.Sprintf("field %s=%q: %v", w.Field, w.Value, w.Err)
}

func (w FieldWarning) Unwrap() error {
	return w.Err
}
