// Package supervisor spawns a single external command and supervises its
// full lifecycle: start, optional kill request, wait, and the resulting
// exit record. It mirrors the spawn/kill/join state machine used by the
// original runner, reshaped around Go's os/exec and channels instead of
// a oneshot-and-select async runtime.
package supervisor

import (
	"io"
	"os/exec"

	"github.com/edirooss/runcc/internal/label"
)

// Stopped is the terminal record of a supervised child: how it exited,
// and — if a kill was requested — what that kill attempt did.
type Stopped struct {
	// Label identifies which command this record belongs to, so a
	// Reason built from one child's Stopped record can be rendered
	// without the caller threading the label through separately.
	Label label.Label

	// Err is the error returned by (*exec.Cmd).Wait, or the error that
	// prevented the command from ever starting. A non-nil *exec.ExitError
	// means the process ran and exited with a non-zero status or was
	// killed by a signal; any other non-nil error means the process
	// could not be started or waited on at all.
	Err error

	// Killed is non-nil when the supervising goroutine acted on a kill
	// request for this child. A request made after the child's own exit
	// was observed is not recorded here (Request returns AlreadyExited).
	Killed *KillOutcome
}

// KillClassification reports what effect a platform kill call actually
// had, distinguishing a clean kill from the race where the child had
// already exited on its own by the time the signal was sent.
type KillClassification int

const (
	// KillClassificationKilled means the kill signal was delivered.
	KillClassificationKilled KillClassification = iota
	// KillClassificationAlreadyExited means the platform call reported
	// the target was already gone (e.g. ESRCH/EPERM on the process
	// group) — the child raced the kill request to exit.
	KillClassificationAlreadyExited
	// KillClassificationFailedToKill means the platform call returned
	// an error that doesn't indicate the child was already gone.
	KillClassificationFailedToKill
)

// KillOutcome records the result of acting on a Killer.Request for this
// child.
type KillOutcome struct {
	Reason         Reason
	Classification KillClassification
	// Err is the error returned by the platform kill call. Only
	// meaningful when Classification is KillClassificationFailedToKill;
	// nil otherwise.
	Err error
}

// Spawned is a started child together with its kill switch and a way to
// wait for its terminal Stopped record.
type Spawned struct {
	cmd     *exec.Cmd
	lbl     label.Label
	killer  *Killer
	done    chan struct{}
	stopped Stopped
}

// Spawn starts cmd, having first wired its stdout and stderr to pipes
// the caller owns (cmd's stdin is left unset, so the child reads from
// the platform's null device same as the original runner). lbl is
// carried through to the Stopped record Join eventually returns, so a
// Reason built from it can be rendered without the caller re-threading
// the label itself. On success the child is running and being
// supervised in a background goroutine; the caller must eventually call
// Join to reap it and retrieve its exit record. On failure to create
// pipes or start the process, no goroutine is started, any pipes already
// created are closed, and nil is returned in place of each pipe.
func Spawn(cmd *exec.Cmd, lbl label.Label) (s *Spawned, stdout, stderr io.ReadCloser, err error) {
	stdout, err = cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	stderr, err = cmd.StderrPipe()
	if err != nil {
		_ = stdout.Close()
		return nil, nil, nil, err
	}

	if err = cmd.Start(); err != nil {
		_ = stdout.Close()
		_ = stderr.Close()
		return nil, nil, nil, err
	}

	s = &Spawned{
		cmd:    cmd,
		lbl:    lbl,
		killer: newKiller(),
		done:   make(chan struct{}),
	}
	go s.supervise()
	return s, stdout, stderr, nil
}

// Killer returns this child's kill switch. It may be called any number
// of times and shared with other goroutines (the fleet's policy
// coordinator, a signal handler) — mirroring share_killer on the
// original spawned-command handle.
func (s *Spawned) Killer() *Killer { return s.killer }

// Join blocks until the child has been fully reaped and returns its
// terminal record. Calling Join more than once returns the same record
// each time.
func (s *Spawned) Join() Stopped {
	<-s.done
	return s.stopped
}

func (s *Spawned) supervise() {
	waitErr := make(chan error, 1)
	go func() { waitErr <- s.cmd.Wait() }()

	var stopped Stopped

	select {
	case err := <-waitErr:
		s.killer.closeIfUnsent()
		stopped.Err = err

	case reason := <-s.killer.ch:
		class, sigErr := killProcessGroup(s.cmd.Process)
		stopped.Err = <-waitErr
		outcome := &KillOutcome{Reason: reason, Classification: class}
		if class == KillClassificationFailedToKill {
			outcome.Err = sigErr
		}
		stopped.Killed = outcome
	}

	stopped.Label = s.lbl
	s.stopped = stopped
	close(s.done)
}
