//go:build linux

package supervisor

import (
	"bufio"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edirooss/runcc/internal/label"
)

func TestSpawn_NaturalExit(t *testing.T) {
	cmd := exec.Command("true")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	drainAndClose(stdout)
	drainAndClose(stderr)

	stopped := s.Join()
	require.NoError(t, stopped.Err)
	require.Nil(t, stopped.Killed)
}

func TestSpawn_ExitFailure(t *testing.T) {
	cmd := exec.Command("false")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	drainAndClose(stdout)
	drainAndClose(stderr)

	stopped := s.Join()
	require.Error(t, stopped.Err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, stopped.Err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
}

func TestSpawn_ReadsOutput(t *testing.T) {
	cmd := exec.Command("echo", "hello")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	defer drainAndClose(stderr)

	sc := bufio.NewScanner(stdout)
	require.True(t, sc.Scan())
	require.Equal(t, "hello", sc.Text())

	stopped := s.Join()
	require.NoError(t, stopped.Err)
}

func TestSpawn_KillRequest(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	defer drainAndClose(stdout)
	defer drainAndClose(stderr)

	result := s.Killer().Request(Reason{Kind: ReasonSignal})
	require.Equal(t, SentSuccess, result)

	done := make(chan Stopped, 1)
	go func() { done <- s.Join() }()

	select {
	case stopped := <-done:
		require.Error(t, stopped.Err)
		require.NotNil(t, stopped.Killed)
		require.Equal(t, ReasonSignal, stopped.Killed.Reason.Kind)
		require.Equal(t, KillClassificationKilled, stopped.Killed.Classification)
	case <-time.After(5 * time.Second):
		t.Fatal("kill request did not terminate the child in time")
	}
}

func TestKiller_RequestIsIdempotent(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	defer drainAndClose(stdout)
	defer drainAndClose(stderr)
	defer s.Killer().Request(Reason{Kind: ReasonSignal})

	first := s.Killer().Request(Reason{Kind: ReasonSignal})
	second := s.Killer().Request(Reason{Kind: ReasonOtherExited})
	require.Equal(t, SentSuccess, first)
	require.Equal(t, AlreadySent, second)
}

func TestKiller_RequestAfterNaturalExit(t *testing.T) {
	cmd := exec.Command("true")
	s, stdout, stderr, err := Spawn(cmd, label.Label{Raw: "test", Display: "test"})
	require.NoError(t, err)
	drainAndClose(stdout)
	drainAndClose(stderr)

	s.Join()
	result := s.Killer().Request(Reason{Kind: ReasonSignal})
	require.Equal(t, AlreadyExited, result)
}

func drainAndClose(rc io.ReadCloser) {
	defer rc.Close()
	buf := make([]byte, 4096)
	for {
		_, err := rc.Read(buf)
		if err != nil {
			return
		}
	}
}
