package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. MalformedInput and PolicyRejected are resolved before any
// process is spawned. ExecutionTimeout and ExecutionFailed are captured into
// the ExecutionResult rather than raised. InternalError is the only class
// that may abort a whole request.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrPolicyRejected   = errors.New("policy rejected")
	ErrExecutionTimeout = errors.New("execution timed out")
	ErrExecutionFailed  = errors.New("execution failed")
	ErrInternal         = errors.New("internal error")
)

// NewMalformedInput wraps ErrMalformedInput with a reason.
func NewMalformedInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

// NewPolicyRejected wraps ErrPolicyRejected with a reason.
func NewPolicyRejected(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPolicyRejected, fmt.Sprintf(format, args...))
}

// NewInternalError wraps ErrInternal with a reason.
func NewInternalError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInternal, msg)
}

// CLI exit codes. These are the process's exit-status contract and must stay
// stable: scripts wrapping nlsh depend on them.
const (
	ExitSuccess         = 0
	ExitInternalError   = 1
	ExitRejected        = 2
	ExitExecutionFailed = 3
	ExitTimeout         = 4
)

// ExitCodeFor maps an error from the pipeline to the CLI exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMalformedInput), errors.Is(err, ErrPolicyRejected):
		return ExitRejected
	case errors.Is(err, ErrExecutionTimeout):
		return ExitTimeout
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	default:
		return ExitInternalError
	}
}
