//go:build windows

package scheduler

import "os/exec"

// terminate kills the task process. Windows has no graceful signal to try
// first.
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
