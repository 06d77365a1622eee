package errs

import (
	"errors"
	"fmt"
)

// ErrInfrastructure is the sentinel matched by every InfrastructureError.
var ErrInfrastructure = errors.New("infrastructure failure")

// InfrastructureError wraps an opaque failure from the data layer or message broker
// (connection loss, constraint violation, timeout). It is never a business error.
type InfrastructureError struct {
	Op    string
	Cause error
}

// NewInfrastructureError wraps cause as an infrastructure failure of operation op.
// A nil cause yields nil so adapters can wrap results unconditionally.
func NewInfrastructureError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &InfrastructureError{
		Op:    op,
		Cause: cause,
	}
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrInfrastructure, e.Op, e.Cause)
}

// Is matches ErrInfrastructure.
func (e *InfrastructureError) Is(target error) bool {
	return target == ErrInfrastructure
}

// Unwrap exposes the underlying cause so drivers' error types stay reachable.
func (e *InfrastructureError) Unwrap() error {
	return e.Cause
}
