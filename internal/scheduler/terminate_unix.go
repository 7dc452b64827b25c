//go:build !windows

package scheduler

import (
	"os/exec"
	"syscall"
)

// terminate asks the task process to exit. The executor's WaitDelay kills
// it if the signal is ignored.
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Signal(syscall.SIGTERM)
}
