//go:build linux

package supervisor

import (
	"os"
	"syscall"
)

// killProcessGroup sends SIGKILL to proc's entire process group (a
// negative pid targets the group rather than the single process) when
// proc leads its own group, so shell-wrapped children and any
// descendants they fork are reached in one signal. Setpgid is applied in
// cmdbuild.Build's platform-specific SysProcAttr; a command started
// without it shares its parent's group, and then only proc itself is
// signalled. SIGKILL, not SIGTERM:
// the engine has no graceful-shutdown protocol, and a child that traps
// SIGTERM would never die.
//
// The returned classification mirrors start_kill_child_process in the
// original runner: ESRCH/EPERM mean the group is already gone (the
// child raced us to exit, or its pid was already reaped and reused),
// so that's reported as AlreadyExited rather than a failure; any other
// error is a genuine FailedToKill.
func killProcessGroup(proc *os.Process) (KillClassification, error) {
	if proc == nil {
		return KillClassificationAlreadyExited, nil
	}

	target := -proc.Pid
	if pgid, err := syscall.Getpgid(proc.Pid); err == nil && pgid != proc.Pid {
		target = proc.Pid
	}
	err := syscall.Kill(target, syscall.SIGKILL)
	if err == nil {
		return KillClassificationKilled, nil
	}
	if errno, ok := err.(syscall.Errno); ok && (errno == syscall.ESRCH || errno == syscall.EPERM) {
		return KillClassificationAlreadyExited, nil
	}
	return KillClassificationFailedToKill, err
}
