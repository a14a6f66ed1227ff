package cmdbuild

import (
	"os"
	"os/exec"

	"github.com/edirooss/runcc/internal/label"
)

// ColorEnv is injected into every child's environment, last in merge
// order so nothing can override it. CARGO_TERM_COLOR is honored by Cargo
// and many Rust tools; FORCE_COLOR is honored by yarn and most Node
// tooling — together they make most subprocesses keep coloring their
// output even though they are not attached to a real terminal.
var ColorEnv = []EnvPair{
	{Name: "CARGO_TERM_COLOR", Value: "always"},
	{Name: "FORCE_COLOR", Value: "true"},
}

// Options controls how a Descriptor is turned into a real *exec.Cmd.
type Options struct {
	TopLevelEnvs     map[string]string
	MaxLabelLength   int
	WindowsScriptEnv WindowsScriptEnvMode
}

// Build assembles an *exec.Cmd and a formatted Label from d.
func Build(d Descriptor, opts Options) (*exec.Cmd, label.Label) {
	cmd, shellEnv := buildPlatform(d, opts)

	if d.Cwd != "" {
		cmd.Dir = d.Cwd
	}
	cmd.Env = mergeEnvs(os.Environ(), opts.TopLevelEnvs, d.Envs, append(append([]EnvPair(nil), ColorEnv...), shellEnv...))

	return cmd, label.Format(d.DisplayLabel(), opts.MaxLabelLength)
}
