package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_DuplicateConfigsError(t *testing.T) {
	opts := Options{ConfigPath: "runcc.json", Commands: []string{"true"}}
	_, err := opts.Resolve()
	require.ErrorIs(t, err, ErrDuplicateConfigs)
}

func TestResolve_PositionalCommands(t *testing.T) {
	opts := Options{Commands: []string{"true", "echo hi"}}
	cfg, err := opts.Resolve()
	require.NoError(t, err)
	require.Len(t, cfg.Commands, 2)
}

func TestResolve_PositionalCommandsWithEnv(t *testing.T) {
	opts := Options{Commands: []string{"true"}, Envs: []string{"FOO=bar"}}
	cfg, err := opts.Resolve()
	require.NoError(t, err)
	require.Equal(t, "bar", cfg.Envs["FOO"])
}

func TestResolve_InvalidEnvSyntax(t *testing.T) {
	opts := Options{Commands: []string{"true"}, Envs: []string{"not-an-assignment"}}
	_, err := opts.Resolve()
	require.ErrorIs(t, err, ErrInvalidEnvSyntax)
}

func TestResolve_KillFlag(t *testing.T) {
	opts := Options{Commands: []string{"true"}, Kill: "WhenAnyExited"}
	cfg, err := opts.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, int(cfg.Kill.Kind)) // KillWhenAnyExited
}

func TestParseKillFlag(t *testing.T) {
	kb, err := ParseKillFlag("WhenAnyFailed")
	require.NoError(t, err)
	require.Equal(t, 2, int(kb.Kind)) // KillWhenAnyExitedWithStatus
}
