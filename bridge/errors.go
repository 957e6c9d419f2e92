package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrBackendUnavailable = errors.New("browser backend is not available")
	ErrInvalidAction      = errors.New("invalid browse action")
)

// ExecutionError describes a failed backend step. It is reported to callers
// only as an error-flagged observation.
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func invalidAction(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}
