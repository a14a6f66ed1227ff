//go:build linux

package cmdbuild

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr isolates the child into its own process group so that
// supervisor.killProcessGroup can terminate it and any descendants it
// forks (a shell-wrapped script's own children, in particular) with a
// single signal.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
