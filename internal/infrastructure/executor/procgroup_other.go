//go:build !darwin && !linux

package executor

import "os/exec"

// setupProcessGroup is a no-op where sessions are unavailable; the context
// cancel still kills the immediate child.
func setupProcessGroup(cmd *exec.Cmd) {}

// terminatingSignal never resolves a signal on platforms without wait
// status introspection.
func terminatingSignal(exitErr *exec.ExitError) (string, bool) {
	return "", false
}
