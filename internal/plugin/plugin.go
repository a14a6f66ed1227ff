// Package plugin defines the hook interface the fleet runner invokes as
// each command spawns, produces output, and exits, plus a default
// implementation that tees child output to the host's stdout/stderr
// with a per-command label prefix.
package plugin

import (
	"io"

	"github.com/edirooss/runcc/internal/label"
	"github.com/edirooss/runcc/internal/supervisor"
)

// Plugin observes a fleet's commands across their lifetime. A fleet
// calls these methods from multiple goroutines concurrently (one per
// command); implementations must be safe for concurrent use.
type Plugin interface {
	// OnSpawned is called once a command has started, with ownership of
	// its stdout/stderr pipes. The plugin must fully drain and close
	// both before returning, or arrange for a goroutine that will.
	OnSpawned(lbl label.Label, stdout, stderr io.ReadCloser)
	// OnSpawnFailed is called in place of OnSpawned when the command
	// could not be started at all.
	OnSpawnFailed(lbl label.Label, err error)
	// OnExited is called once a command has been fully reaped,
	// regardless of whether it exited on its own or was killed.
	OnExited(lbl label.Label, stopped supervisor.Stopped)
	// Join blocks until any background work the plugin started (output
	// drain goroutines, buffered writers) has finished. Called once,
	// after every command has exited.
	Join()
}
