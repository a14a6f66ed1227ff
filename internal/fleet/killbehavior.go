package fleet

import (
	"errors"
	"os/exec"

	"github.com/edirooss/runcc/internal/supervisor"
)

// ExitStatusKind selects which exit-status shape an ExitStatusPattern
// matches against.
type ExitStatusKind int

const (
	ExitStatusSuccess ExitStatusKind = iota
	ExitStatusFailed
	ExitStatusCode
)

// ExitStatusPattern matches a command's terminal Err against one of
// three shapes: any success, any failure, or one specific exit code.
type ExitStatusPattern struct {
	Kind ExitStatusKind
	Code int // meaningful only when Kind == ExitStatusCode
}

// Matches reports whether waitErr — the error supervisor.Stopped.Err
// carried for some command — satisfies p. A waitErr that isn't even an
// *exec.ExitError (the command could not be started or waited on at
// all) counts as a Failed match, on the same reasoning the original
// runner applies: if we can't say it succeeded, it didn't.
func (p ExitStatusPattern) Matches(waitErr error) bool {
	switch p.Kind {
	case ExitStatusSuccess:
		return waitErr == nil
	case ExitStatusFailed:
		return waitErr != nil
	case ExitStatusCode:
		if waitErr == nil {
			// A clean Wait with no error means exit code 0.
			return p.Code == 0
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode() == p.Code
		}
		return false
	default:
		return false
	}
}

// KillBehaviorKind selects how a fleet reacts to one of its commands
// exiting.
type KillBehaviorKind int

const (
	// KillNone never kills siblings when one command exits.
	KillNone KillBehaviorKind = iota
	// KillWhenAnyExited kills every other running command as soon as
	// any one command exits, for any reason.
	KillWhenAnyExited
	// KillWhenAnyExitedWithStatus kills every other running command
	// only when an exiting command's status matches Pattern.
	KillWhenAnyExitedWithStatus
)

// KillBehavior is the fleet-wide policy applied each time a command
// exits on its own (never triggered by a kill that was itself requested
// by this same policy).
type KillBehavior struct {
	Kind    KillBehaviorKind
	Pattern ExitStatusPattern
}

// shouldKillAll reports whether stopped's exit should trigger killing
// every other still-running command in the fleet.
func (b KillBehavior) shouldKillAll(stopped supervisor.Stopped) bool {
	switch b.Kind {
	case KillNone:
		return false
	case KillWhenAnyExited:
		return true
	case KillWhenAnyExitedWithStatus:
		return b.Pattern.Matches(stopped.Err)
	default:
		return false
	}
}
