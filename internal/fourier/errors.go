package fourier

import (
	"errors"
	"fmt"
)

// Domain errors for analysis and synthesis operations.
var (
	// ErrInvalidArgument indicates a rejected input, reported before any
	// computation starts.
	ErrInvalidArgument = errors.New("fourier: invalid argument")

	// ErrUnsupportedOperation indicates an operation requested from a
	// configuration that does not provide it.
	ErrUnsupportedOperation = errors.New("fourier: unsupported operation")
)

// ArgumentError wraps ErrInvalidArgument with the offending input.
type ArgumentError struct {
	Op     string
	Name   string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Op, e.Name, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(op, name string, value any, reason string) error {
	return &ArgumentError{Op: op, Name: name, Value: value, Reason: reason}
}

// Unsupported reports that op is not available on the named configuration.
func Unsupported(op, configuration string) error {
	return fmt.Errorf("%w: %s on %s configuration", ErrUnsupportedOperation, op, configuration)
}
