// Package runconfig discovers and parses a runcc config file, resolving
// it into a RunConfig ready for internal/fleet to spawn. It mirrors the
// original's multi-format config layer: JSON, YAML, and TOML documents
// are all normalized through a common generic-value resolver instead of
// per-format serde derive impls, since Go has no equivalent of
// serde(untagged) to lean on.
package runconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/edirooss/runcc/internal/cmdbuild"
	"github.com/edirooss/runcc/internal/fleet"
)

// Format names the file format a config document was read from.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
	FormatRON
	FormatCargoMetadata
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatRON:
		return "ron"
	case FormatCargoMetadata:
		return "cargo-metadata"
	default:
		return "unknown"
	}
}

// candidateFiles is tried in order against the search directory; the
// first one that exists wins. This matches the original's extension
// search order exactly, including the later, unsupported .ron entry so
// that a project relying on it gets ErrRONUnsupported instead of
// silently falling through to Cargo.toml.
var candidateFiles = []struct {
	name   string
	format Format
}{
	{"runcc.json", FormatJSON},
	{"runcc.yml", FormatYAML},
	{"runcc.yaml", FormatYAML},
	{"runcc.ron", FormatRON},
	{"runcc.toml", FormatTOML},
}

// RunConfig is a fully resolved set of commands ready to spawn.
type RunConfig struct {
	Commands         []cmdbuild.Descriptor
	MaxLabelLength   int
	Envs             map[string]string
	Kill             fleet.KillBehavior
	WindowsScriptEnv cmdbuild.WindowsScriptEnvMode
}

// Discover searches dir for a config file in the fixed format order
// (runcc.json, .yml, .yaml, .ron, .toml, then Cargo.toml's
// [package.metadata.runcc] / [workspace.metadata.runcc] table) and
// parses whichever one it finds first.
func Discover(dir string) (*RunConfig, string, Format, error) {
	for _, c := range candidateFiles {
		path := filepath.Join(dir, c.name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if c.format == FormatRON {
			return nil, path, FormatRON, ErrRONUnsupported
		}
		cfg, err := parseDocument(data, c.format)
		if err != nil {
			return nil, path, c.format, err
		}
		return cfg, path, c.format, nil
	}

	path := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", 0, ErrNoConfigFile
	}
	cfg, err := parseCargoMetadata(data)
	if err != nil {
		return nil, path, FormatCargoMetadata, err
	}
	if cfg == nil {
		return nil, "", 0, ErrNoConfigFile
	}
	return cfg, path, FormatCargoMetadata, nil
}

// ParseFile parses a config document whose format is inferred from its
// extension, for callers (and the -c/--config CLI flag) that name a
// specific file rather than relying on Discover's search order.
func ParseFile(path string) (*RunConfig, Format, error) {
	var format Format
	switch filepath.Ext(path) {
	case ".json":
		format = FormatJSON
	case ".yml", ".yaml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	case ".ron":
		return nil, FormatRON, ErrRONUnsupported
	default:
		format = FormatYAML
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format, err
	}
	cfg, err := parseDocument(data, format)
	return cfg, format, err
}

func parseDocument(data []byte, format Format) (*RunConfig, error) {
	var doc map[string]any
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	default:
		return nil, fmt.Errorf("runconfig: unsupported format %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("runconfig: %s: %w", format, err)
	}

	return resolveRunConfig(doc)
}

// Resolve turns an already-decoded config document — built directly
// from CLI flags, rather than read off disk — into a RunConfig.
func Resolve(doc map[string]any) (*RunConfig, error) {
	return resolveRunConfig(doc)
}

// resolveRunConfig turns a generic decoded document into a RunConfig,
// the Go counterpart of RunConfigInput::into(RunConfig) in the
// original: commands are resolved, and max_label_length is capped to
// (and, when unset or zero, derived from) the longest label actually
// produced.
func resolveRunConfig(doc map[string]any) (*RunConfig, error) {
	commandsRaw, ok := doc["commands"]
	if !ok {
		return nil, ErrMissingCommands
	}
	descriptors, err := parseCommandsInput(commandsRaw)
	if err != nil {
		return nil, err
	}

	realMax := 0
	for _, d := range descriptors {
		if n := d.LabelLength(); n > realMax {
			realMax = n
		}
	}

	maxLen := realMax
	if v, present := doc["max_label_length"]; present {
		if n, ok := asInt(v); ok && n != 0 {
			if n < realMax {
				maxLen = n
			}
		}
	}

	envs := map[string]string{}
	if v, present := doc["envs"]; present {
		if m, ok := asStringMap(v); ok {
			envs = m
		}
	}

	kill := fleet.KillBehavior{Kind: fleet.KillNone}
	if v, present := doc["kill"]; present {
		kill, err = parseKillBehavior(v)
		if err != nil {
			return nil, err
		}
	}

	windowsEnv := cmdbuild.WindowsScriptEnvMode{Kind: cmdbuild.WindowsScriptEnvRandom}
	if v, present := doc["windows_call_cmd_with_env"]; present {
		windowsEnv, err = parseWindowsScriptEnv(v)
		if err != nil {
			return nil, err
		}
	}

	return &RunConfig{
		Commands:         descriptors,
		MaxLabelLength:   maxLen,
		Envs:             envs,
		Kill:             kill,
		WindowsScriptEnv: windowsEnv,
	}, nil
}

func parseWindowsScriptEnv(v any) (cmdbuild.WindowsScriptEnvMode, error) {
	switch t := v.(type) {
	case string:
		switch t {
		case "Random":
			return cmdbuild.WindowsScriptEnvMode{Kind: cmdbuild.WindowsScriptEnvRandom}, nil
		case "Disable":
			return cmdbuild.WindowsScriptEnvMode{Kind: cmdbuild.WindowsScriptEnvDisabled}, nil
		default:
			return cmdbuild.WindowsScriptEnvMode{}, fmt.Errorf("runconfig: invalid windows_call_cmd_with_env %q", t)
		}
	case map[string]any:
		if name, ok := t["EnvName"].(string); ok {
			return cmdbuild.WindowsScriptEnvMode{Kind: cmdbuild.WindowsScriptEnvFixedName, Name: name}, nil
		}
		return cmdbuild.WindowsScriptEnvMode{}, fmt.Errorf("runconfig: invalid windows_call_cmd_with_env value")
	default:
		return cmdbuild.WindowsScriptEnvMode{}, fmt.Errorf("runconfig: invalid windows_call_cmd_with_env value")
	}
}
