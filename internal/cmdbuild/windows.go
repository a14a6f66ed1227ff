package cmdbuild

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

// WindowsScriptEnvKind selects how a wrapped "cmd /C script" invocation
// passes the script text to cmd.exe on Windows. cmd's command-line
// grammar treats many characters (%, &, |, ^, quotes) specially, and a
// script built from a Cargo.toml command or a YAML run string can
// contain any of them. Passing the script through an environment
// variable and referencing it as %VARNAME% on the command line sidesteps
// cmd's own re-parsing of the literal text, at the cost of requiring the
// variable to round-trip through the child's environment unexpanded
// (cmd does the expansion, not Go).
type WindowsScriptEnvKind int

const (
	// WindowsScriptEnvRandom generates a fresh, unpredictable variable
	// name per invocation. This is the default: it avoids colliding with
	// a variable the script itself might reference.
	WindowsScriptEnvRandom WindowsScriptEnvKind = iota
	// WindowsScriptEnvFixedName uses a caller-supplied variable name
	// every time, for callers who want a stable, inspectable name.
	WindowsScriptEnvFixedName
	// WindowsScriptEnvDisabled passes the script literally on the cmd
	// /C command line, with no indirection.
	WindowsScriptEnvDisabled
)

// WindowsScriptEnvMode is Options.WindowsScriptEnv's value. The zero
// value selects WindowsScriptEnvRandom, matching the original runner's
// default.
type WindowsScriptEnvMode struct {
	Kind WindowsScriptEnvKind
	Name string // only meaningful when Kind == WindowsScriptEnvFixedName
}

const windowsScriptEnvNamePrefix = "RUNCC_WIN_CMD_"

// buildPlatform constructs the *exec.Cmd for d, applying Windows
// cmd-indirection when opts.WindowsScriptEnv calls for it and d was
// produced by wrapInShell with Program=="cmd". It returns any extra
// environment assignment the indirection requires, which the caller
// must fold into the final merged environment (mergeEnvs overwrites
// cmd.Env wholesale, so it cannot be set directly on cmd here).
func buildPlatform(d Descriptor, opts Options) (*exec.Cmd, []EnvPair) {
	if runtime.GOOS != "windows" || d.Program != "cmd" || opts.WindowsScriptEnv.Kind == WindowsScriptEnvDisabled {
		cmd := exec.Command(d.Program, d.Args...)
		setSysProcAttr(cmd)
		return cmd, nil
	}

	// d.Args is ["/C", script] as produced by wrapInShell.
	if len(d.Args) != 2 || d.Args[0] != "/C" {
		cmd := exec.Command(d.Program, d.Args...)
		setSysProcAttr(cmd)
		return cmd, nil
	}
	script := d.Args[1]

	name := opts.WindowsScriptEnv.Name
	if opts.WindowsScriptEnv.Kind == WindowsScriptEnvRandom {
		name = windowsScriptEnvNamePrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString()[:8], "-", ""))
	}

	cmd := exec.Command(d.Program, "/C", "%"+name+"%")
	setSysProcAttr(cmd)
	return cmd, []EnvPair{{Name: name, Value: script}}
}
