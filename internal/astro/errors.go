// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a value falls outside the domain a
// constructor declares.
var ErrValidation = errors.New("value outside domain")

// DomainError wraps ErrValidation with the operation that rejected a value.
type DomainError struct {
	Op    string // e.g. "ecliptic.of"
	Value string // offending value, formatted
	Err   error
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Op
	if e.Value != "" {
		base += fmt.Sprintf(" (%s)", e.Value)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalid(op, format string, args ...any) error {
	return &DomainError{Op: op, Value: fmt.Sprintf(format, args...), Err: ErrValidation}
}
