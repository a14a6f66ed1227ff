package plugin

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edirooss/runcc/internal/label"
	"github.com/edirooss/runcc/internal/supervisor"
)

type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

func TestTeePlugin_OnSpawnedDrainsAndJoins(t *testing.T) {
	p := NewTeePlugin(zap.NewNop())

	stdout := nopReadCloser{strings.NewReader("line one\nline two\n")}
	stderr := nopReadCloser{strings.NewReader("err line\n")}

	p.OnSpawned(label.Format("worker", 6), stdout, stderr)
	p.Join() // must not hang
}

func TestTeePlugin_ExitStatusText(t *testing.T) {
	require.Equal(t, "code 0", exitStatusText(nil))
	require.Equal(t, "error: boom", exitStatusText(errBoom{}))
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestTeePlugin_OnExited_NoPanic(t *testing.T) {
	p := NewTeePlugin(zap.NewNop())
	p.OnExited(label.Format("worker", 6), supervisor.Stopped{})
	p.OnExited(label.Format("worker", 6), supervisor.Stopped{
		Killed: &supervisor.KillOutcome{Reason: supervisor.Reason{Kind: supervisor.ReasonSignal}},
	})
}
