package errs

import (
	"errors"
	"fmt"
)

// ErrValueIsRequired is the sentinel matched by every ValueIsRequiredError.
var ErrValueIsRequired = errors.New("value is required")

// ValueIsRequiredError reports that a mandatory parameter is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *ValueIsRequiredError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValueIsRequired}
	}
	return []error{ErrValueIsRequired, e.Cause}
}
