//go:build darwin || linux

package executor

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// processGroupWaitDelay bounds how long we wait for pipe reads after the
// group was killed before giving up on straggling grandchildren.
const processGroupWaitDelay = 3 * time.Second

// setupProcessGroup runs the child in its own session (Setsid) and installs
// a Cancel hook that kills the entire process group when the watchdog or the
// user's interrupt fires. A session of its own also stops orphaned
// grandchildren (pipelines spawn several) from holding the stdout/stderr
// pipes open after the leader dies.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true

	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return os.ErrProcessDone
		}
		pid := cmd.Process.Pid
		// kill(-1) would signal every process we own and kill(0) the
		// caller's own group. Treat nonsense PIDs as already done.
		if pid <= 1 {
			return os.ErrProcessDone
		}
		if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
			if errors.Is(err, syscall.ESRCH) {
				return os.ErrProcessDone
			}
			return err
		}
		return nil
	}
	cmd.WaitDelay = processGroupWaitDelay
}

// terminatingSignal reports the signal that killed the process, if any.
func terminatingSignal(exitErr *exec.ExitError) (string, bool) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return "", false
	}
	return status.Signal().String(), true
}
