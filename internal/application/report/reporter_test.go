package report

import (
	"errors"
	"testing"
	"time"

	"github.com/nlshell/nlsh/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestSummarizeSuccess(t *testing.T) {
	summary := Summarize(domain.ExecutionResult{
		ExitCode: intPtr(0),
		Stdout:   []byte("ok\n"),
		Duration: 12 * time.Millisecond,
	})
	if summary.Outcome != OutcomeSuccess {
		t.Fatalf("want success, got %s", summary.Outcome)
	}
	if summary.Stdout != "ok\n" {
		t.Fatalf("stdout not carried through: %q", summary.Stdout)
	}
	if err := ExitStatusError(summary); err != nil {
		t.Fatalf("success must map to nil error, got %v", err)
	}
}

func TestSummarizeNonZeroExitIsCommandFailure(t *testing.T) {
	summary := Summarize(domain.ExecutionResult{ExitCode: intPtr(2)})
	if summary.Outcome != OutcomeCommandFailed {
		t.Fatalf("exit 2: want command_failed, got %s", summary.Outcome)
	}
	if summary.ExitCode == nil || *summary.ExitCode != 2 {
		t.Fatalf("exit code: want 2, got %v", summary.ExitCode)
	}
	if !errors.Is(ExitStatusError(summary), domain.ErrExecutionFailed) {
		t.Fatal("command failure must map to ErrExecutionFailed")
	}
}

func TestSummarizeTimeout(t *testing.T) {
	summary := Summarize(domain.ExecutionResult{TimedOut: true, Duration: time.Second})
	if summary.Outcome != OutcomeTimedOut {
		t.Fatalf("want timed_out, got %s", summary.Outcome)
	}
	if summary.ExitCode != nil {
		t.Fatal("timeout must not carry an exit code")
	}
	if !errors.Is(ExitStatusError(summary), domain.ErrExecutionTimeout) {
		t.Fatal("timeout must map to ErrExecutionTimeout")
	}
}

func TestSummarizeSignalTermination(t *testing.T) {
	summary := Summarize(domain.ExecutionResult{Signal: "terminated"})
	if summary.Outcome != OutcomeSignaled {
		t.Fatalf("want signal_terminated, got %s", summary.Outcome)
	}
	if !errors.Is(ExitStatusError(summary), domain.ErrExecutionFailed) {
		t.Fatal("signal termination must map to ErrExecutionFailed")
	}
}

func TestSummarizeSpawnFailure(t *testing.T) {
	summary := Summarize(domain.ExecutionResult{Err: errors.New("no such file")})
	if summary.Outcome != OutcomeInternalError {
		t.Fatalf("want internal_error, got %s", summary.Outcome)
	}
	if !errors.Is(ExitStatusError(summary), domain.ErrInternal) {
		t.Fatal("spawn failure must map to ErrInternal")
	}
}

func TestSummarizeTimeoutWinsOverSignal(t *testing.T) {
	// The watchdog kills with SIGKILL, so a timed-out result usually also
	// looks signal-terminated; timeout is the meaningful classification.
	summary := Summarize(domain.ExecutionResult{TimedOut: true, Signal: "killed"})
	if summary.Outcome != OutcomeTimedOut {
		t.Fatalf("want timed_out, got %s", summary.Outcome)
	}
}
