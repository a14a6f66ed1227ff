// Package cmdbuild assembles an OS-level command invocation — program,
// args, working directory, merged environment — and a human-readable
// label from a normalized command descriptor.
package cmdbuild

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/edirooss/runcc/internal/envparse"
)

// EnvPair is an ordered, duplicate-preserving (name, value) assignment.
// Later pairs in a slice override earlier ones with the same name when
// merged into an environment.
type EnvPair struct {
	Name  string
	Value string
}

// Descriptor is the normalized input to the builder. The From*
// constructors below leave Program empty only when given no program
// text at all (an empty script or an empty argv slice).
type Descriptor struct {
	Program string
	Args    []string
	Label   string // empty means "derive from Program and Args"
	Envs    []EnvPair
	Cwd     string
}

// FromScript builds a Descriptor from a single raw shell-script string,
// extracting any leading "KEY=VALUE ..." assignments and wrapping the
// remainder in the platform shell (sh -c / cmd /C) when it is not a bare
// program name.
func FromScript(script string) Descriptor {
	script = strings.TrimSpace(script)
	pairs, program := envparse.ParseLeadingEnvs(script)

	envs := make([]EnvPair, 0, len(pairs))
	for _, p := range pairs {
		envs = append(envs, EnvPair{Name: p.Name, Value: p.Value})
	}

	if strings.Contains(program, " ") {
		d := wrapInShell(program)
		d.Label = program
		d.Envs = envs
		return d
	}

	return Descriptor{Program: program, Envs: envs}
}

// wrapInShell wraps script in the platform shell: sh -c on everything but
// Windows, cmd /C on Windows. The returned Descriptor has Program/Args set
// and Label left empty — callers set Label to the original script text.
func wrapInShell(script string) Descriptor {
	if runtime.GOOS == "windows" {
		return Descriptor{Program: "cmd", Args: []string{"/C", script}}
	}
	return Descriptor{Program: "sh", Args: []string{"-c", script}}
}

// FromProgramArgs builds a Descriptor directly from an argv-style slice;
// names[0] is the program, the rest are arguments.
func FromProgramArgs(names []string) Descriptor {
	if len(names) == 0 {
		return Descriptor{}
	}
	d := Descriptor{Program: names[0]}
	if len(names) > 1 {
		d.Args = append([]string(nil), names[1:]...)
	}
	return d
}

// DisplayLabel returns the descriptor's label, deriving one from Program
// and Args when Label is unset.
func (d Descriptor) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	if len(d.Args) == 0 {
		return d.Program
	}
	return fmt.Sprintf("%s %s", d.Program, strings.Join(d.Args, " "))
}

// LabelLength returns the byte length DisplayLabel() would produce,
// without actually joining args — used to derive max_label_length when
// it is left at its zero value.
func (d Descriptor) LabelLength() int {
	if d.Label != "" {
		return len(d.Label)
	}
	n := len(d.Program)
	for _, a := range d.Args {
		n += len(a) + 1
	}
	return n
}

// mergeEnvs merges parent, top-level, descriptor, and injected
// environments in that priority order (later entries override earlier
// ones with the same name), returning a flattened KEY=VALUE slice in
// first-seen order.
func mergeEnvs(parent []string, topLevel map[string]string, descriptor []EnvPair, injected []EnvPair) []string {
	order := make([]string, 0, len(parent)+len(topLevel)+len(descriptor)+len(injected))
	values := make(map[string]string, len(order))

	set := func(name, value string) {
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = value
	}

	for _, kv := range parent {
		if name, value, ok := strings.Cut(kv, "="); ok {
			set(name, value)
		}
	}
	for name, value := range topLevel {
		set(name, value)
	}
	for _, kv := range descriptor {
		set(kv.Name, kv.Value)
	}
	for _, kv := range injected {
		set(kv.Name, kv.Value)
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		out = append(out, name+"="+values[name])
	}
	return out
}
