// Package fault defines the validation error kind shared by all
// definition-management operations. A NotAllowedError carries a
// human-readable message that, for enumerated-choice failures, lists the
// valid options inline; callers surface the message to the client verbatim.
package fault

import (
	"errors"
	"fmt"
)

// NotAllowedError is a rejected input. The message is part of the API
// contract, not just diagnostics.
type NotAllowedError struct {
	Message string
}

func (e *NotAllowedError) Error() string {
	return e.Message
}

// NotAllowed builds a NotAllowedError from a format string.
func NotAllowed(format string, args ...any) error {
	return &NotAllowedError{Message: fmt.Sprintf(format, args...)}
}

// IsNotAllowed reports whether err is (or wraps) a NotAllowedError.
func IsNotAllowed(err error) bool {
	var na *NotAllowedError
	return errors.As(err, &na)
}
