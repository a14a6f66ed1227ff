//go:build !linux

package supervisor

import (
	"errors"
	"os"
	"syscall"
)

// killProcessGroup falls back to killing just the direct child process.
// Non-Linux platforms don't get the process-group Setpgid treatment
// cmdbuild applies on Linux, so there is no group to target here.
// Classification follows the same rule as the Linux path: a process
// that's already gone is reported as AlreadyExited, not a failure.
func killProcessGroup(proc *os.Process) (KillClassification, error) {
	if proc == nil {
		return KillClassificationAlreadyExited, nil
	}

	err := proc.Kill()
	if err == nil {
		return KillClassificationKilled, nil
	}
	if errors.Is(err, os.ErrProcessDone) {
		return KillClassificationAlreadyExited, nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == syscall.ESRCH || errno == syscall.EPERM) {
		return KillClassificationAlreadyExited, nil
	}
	return KillClassificationFailedToKill, err
}
