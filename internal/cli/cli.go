// Package cli wires cobra/pflag command-line parsing to
// internal/runconfig, resolving either a config file or a set of
// positional commands into a runconfig.RunConfig.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/edirooss/runcc/internal/envparse"
	"github.com/edirooss/runcc/internal/fleet"
	"github.com/edirooss/runcc/internal/runconfig"
)

var (
	// ErrDuplicateConfigs means both positional commands and -c/--config
	// were given; only one of the two command sources is allowed.
	ErrDuplicateConfigs = errors.New("cli: positional commands and --config cannot both be specified")
	// ErrNoConfigs means neither positional commands, -c/--config, nor a
	// discoverable config file in the working directory produced any
	// commands to run.
	ErrNoConfigs = errors.New("cli: no commands specified and no config file found")
	// ErrInvalidEnvSyntax means a -e/--env flag value wasn't a single
	// NAME=VALUE assignment.
	ErrInvalidEnvSyntax = errors.New("cli: invalid --env syntax")
)

// Options holds the parsed command-line flags, independent of cobra so
// the resolution logic below is easy to unit test without invoking the
// cobra command tree.
type Options struct {
	Commands       []string
	ConfigPath     string
	MaxLabelLength int
	Envs           []string
	Kill           string
}

// Resolve turns parsed Options into a runconfig.RunConfig, following
// the same precedence as the original: an explicit config path or
// positional commands may be given, but not both; if neither is given,
// fall back to discovering a config file in the working directory.
func (o Options) Resolve() (*runconfig.RunConfig, error) {
	if o.ConfigPath != "" && len(o.Commands) > 0 {
		return nil, ErrDuplicateConfigs
	}

	if o.ConfigPath != "" {
		cfg, _, err := runconfig.ParseFile(o.ConfigPath)
		return cfg, err
	}

	if len(o.Commands) > 0 {
		return o.resolveFromPositionalCommands()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, _, _, err := runconfig.Discover(cwd)
	if errors.Is(err, runconfig.ErrNoConfigFile) {
		return nil, ErrNoConfigs
	}
	return cfg, err
}

func (o Options) resolveFromPositionalCommands() (*runconfig.RunConfig, error) {
	envs, err := parseEnvFlags(o.Envs)
	if err != nil {
		return nil, err
	}

	doc := map[string]any{
		"commands": stringsToAny(o.Commands),
	}
	if o.MaxLabelLength != 0 {
		doc["max_label_length"] = o.MaxLabelLength
	}
	if len(envs) > 0 {
		doc["envs"] = envs
	}
	cfg, err := runconfig.Resolve(doc)
	if err != nil {
		return nil, err
	}
	if o.Kill != "" {
		// Decoded through the YAML scalar grammar, so a bare status code
		// such as "2" is read as a number rather than an unknown name.
		kill, err := ParseKillFlag(o.Kill)
		if err != nil {
			return nil, err
		}
		cfg.Kill = kill
	}
	return cfg, nil
}

func parseEnvFlags(flags []string) (map[string]any, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(flags))
	for _, f := range flags {
		// ParseLeadingEnvs only closes a NAME=VALUE token on a following
		// whitespace run (it never commits a value that runs to end of
		// input, matching the ported lexer) — a -e flag carries a bare
		// token with nothing after it, so append the separator the
		// state machine expects before parsing.
		pairs, rest := envparse.ParseLeadingEnvs(f + " ")
		if len(pairs) != 1 || rest != "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEnvSyntax, f)
		}
		out[pairs[0].Name] = pairs[0].Value
	}
	return out, nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ParseKillFlag exposes runconfig's kill-behavior grammar so cobra
// command setup can validate -k/--kill eagerly, before Resolve runs.
func ParseKillFlag(s string) (fleet.KillBehavior, error) {
	return runconfig.ParseKillBehaviorString(s)
}
