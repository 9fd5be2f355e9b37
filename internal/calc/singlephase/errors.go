package singlephase

import (
	"errors"
	"strings"
)

// Field names an engine input.
type Field string

const (
	FieldW   Field = "w"
	FieldRho Field = "rho"
	FieldID  Field = "id"
	FieldMu  Field = "mu"
)

var ErrDivisionByZero = errors.New("division by zero")

// DivisionByZeroError is returned when a derivation's precondition product
// contains a zero factor. Fields lists every zero-valued factor.
type DivisionByZeroError struct {
	Op     string
	Fields []Field
}

func (e *DivisionByZeroError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return e.Op + ": division by zero (" + strings.Join(names, ", ") + " is zero)"
}

func (e *DivisionByZeroError) Unwrap() error {
	return ErrDivisionByZero
}

// Has reports whether f is one of the offending fields.
func (e *DivisionByZeroError) Has(f Field) bool {
	for _, x := range e.Fields {
		if x == f {
			return true
		}
	}
	return false
}
