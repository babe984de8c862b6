// Package report normalizes raw execution outcomes into a stable shape for
// the presentation layer. Pure mapping; no side effects.
package report

import (
	"fmt"
	"time"

	"github.com/nlshell/nlsh/internal/domain"
)

// Outcome is the stable classification of one execution result.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeCommandFailed Outcome = "command_failed"
	OutcomeTimedOut      Outcome = "timed_out"
	OutcomeSignaled      Outcome = "signal_terminated"
	OutcomeInternalError Outcome = "internal_error"
)

// Summary is what the presentation layer renders after execution.
type Summary struct {
	Outcome  Outcome
	Headline string
	ExitCode *int
	Signal   string
	Duration time.Duration
	Stdout   string
	Stderr   string
}

// Summarize maps an ExecutionResult to its Summary. Success means exit code
// zero; everything else is distinguished so callers can tell "ran and
// failed" from "never finished".
func Summarize(result domain.ExecutionResult) Summary {
	summary := Summary{
		ExitCode: result.ExitCode,
		Signal:   result.Signal,
		Duration: result.Duration,
		Stdout:   string(result.Stdout),
		Stderr:   string(result.Stderr),
	}

	switch {
	case result.TimedOut:
		summary.Outcome = OutcomeTimedOut
		summary.Headline = fmt.Sprintf("command timed out after %s", result.Duration.Round(time.Millisecond))
	case result.Err != nil:
		summary.Outcome = OutcomeInternalError
		summary.Headline = fmt.Sprintf("command could not be started: %v", result.Err)
	case result.Signal != "":
		summary.Outcome = OutcomeSignaled
		summary.Headline = fmt.Sprintf("command terminated by signal: %s", result.Signal)
	case result.ExitCode != nil && *result.ExitCode == 0:
		summary.Outcome = OutcomeSuccess
		summary.Headline = fmt.Sprintf("command completed in %s", result.Duration.Round(time.Millisecond))
	default:
		summary.Outcome = OutcomeCommandFailed
		code := -1
		if result.ExitCode != nil {
			code = *result.ExitCode
		}
		summary.Headline = fmt.Sprintf("command failed with exit code %d", code)
	}
	return summary
}

// ExitStatusError converts a non-success summary into the taxonomy error the
// CLI maps to its exit-status contract. Success returns nil.
func ExitStatusError(summary Summary) error {
	switch summary.Outcome {
	case OutcomeSuccess:
		return nil
	case OutcomeTimedOut:
		return domain.ErrExecutionTimeout
	case OutcomeInternalError:
		return domain.ErrInternal
	default:
		return domain.ErrExecutionFailed
	}
}
