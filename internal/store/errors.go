package store

import (
	"errors"
	"fmt"
)

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is returned by Add when the input is rejected.
// The store is never mutated on this path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
