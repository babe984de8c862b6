// Package executor runs approved commands as bounded child processes.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// Local executes commands through the host shell, confined to a working
// directory and bounded by a watchdog timeout that kills the entire process
// group. One command runs at a time; Local keeps no state between calls.
type Local struct {
	shell string
}

// NewLocal builds an executor. An empty shell resolves to $SHELL, then
// /bin/sh.
func NewLocal(shell string) *Local {
	if shell == "" || shell == "auto" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = domain.DefaultShell
	}
	return &Local{shell: shell}
}

// Execute implements ports.CommandExecutor. It refuses dangerous or
// unclassified commands regardless of the caller's own gating, and refuses
// caution-level commands that were never confirmed. Timeouts and non-zero
// exits are captured in the result, never raised; only a spawn failure
// returns an error.
func (e *Local) Execute(ctx context.Context, cmd *domain.Command, settings domain.ExecutionSettings) (domain.ExecutionResult, error) {
	if err := e.refuseUnapproved(cmd); err != nil {
		_ = cmd.Reject()
		return domain.ExecutionResult{Command: cmd}, err
	}
	if err := cmd.Begin(); err != nil {
		return domain.ExecutionResult{Command: cmd}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, settings.Timeout())
	defer cancel()

	child := exec.CommandContext(runCtx, e.shell, "-c", cmd.Raw)
	child.Dir = settings.WorkDir

	var stdout, stderr bytes.Buffer
	child.Stdout = &stdout
	child.Stderr = &stderr

	setupProcessGroup(child)

	start := time.Now()
	runErr := child.Run()

	result := domain.ExecutionResult{
		Command:  cmd,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		// Watchdog fired: the whole process group is gone, no exit code.
		result.TimedOut = true
		_ = cmd.Finish(domain.StateTimedOut)
		return result, nil

	case runErr == nil:
		code := 0
		result.ExitCode = &code
		_ = cmd.Finish(domain.StateCompleted)
		return result, nil

	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			if signal, ok := terminatingSignal(exitErr); ok {
				result.Signal = signal
			} else {
				code := exitErr.ExitCode()
				result.ExitCode = &code
			}
			_ = cmd.Finish(domain.StateFailed)
			return result, nil
		}
		// The process never started (missing interpreter, bad workdir).
		result.Err = runErr
		_ = cmd.Finish(domain.StateFailed)
		return result, domain.NewInternalError("spawn: " + runErr.Error())
	}
}

func (e *Local) refuseUnapproved(cmd *domain.Command) error {
	switch cmd.Risk() {
	case domain.RiskSafe:
		return nil
	case domain.RiskCaution:
		if cmd.Confirmed() {
			return nil
		}
		return domain.NewPolicyRejected("caution-level command was never confirmed")
	case domain.RiskDangerous:
		return domain.NewPolicyRejected("refusing to execute a dangerous command")
	default:
		return domain.NewPolicyRejected("refusing to execute an unclassified command")
	}
}

var _ ports.CommandExecutor = (*Local)(nil)
