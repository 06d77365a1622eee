package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel matched by every VersionIsInvalidError.
// Repositories return it when an optimistic concurrency check fails.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError reports that the stored version of an aggregate no longer
// matches the version the caller loaded.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *VersionIsInvalidError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrVersionIsInvalid}
	}
	return []error{ErrVersionIsInvalid, e.Cause}
}
