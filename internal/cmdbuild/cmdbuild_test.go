package cmdbuild

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromScript_BareProgram(t *testing.T) {
	d := FromScript("true")
	require.Equal(t, "true", d.Program)
	require.Empty(t, d.Args)
	require.Equal(t, "true", d.DisplayLabel())
}

func TestFromScript_LeadingEnvs(t *testing.T) {
	d := FromScript("FOO=bar BAZ=qux true")
	require.Equal(t, "true", d.Program)
	require.Equal(t, []EnvPair{{Name: "FOO", Value: "bar"}, {Name: "BAZ", Value: "qux"}}, d.Envs)
}

func TestFromScript_WrapsMultiWordScript(t *testing.T) {
	d := FromScript("echo hello world")
	require.Equal(t, "sh", d.Program)
	require.Equal(t, []string{"-c", "echo hello world"}, d.Args)
	require.Equal(t, "echo hello world", d.DisplayLabel())
}

func TestFromProgramArgs(t *testing.T) {
	d := FromProgramArgs([]string{"echo", "a", "b"})
	require.Equal(t, "echo", d.Program)
	require.Equal(t, []string{"a", "b"}, d.Args)
	require.Equal(t, "echo a b", d.DisplayLabel())
}

func TestFromProgramArgs_Empty(t *testing.T) {
	d := FromProgramArgs(nil)
	require.Equal(t, Descriptor{}, d)
}

func TestLabelLength_MatchesDisplayLabel(t *testing.T) {
	d := FromProgramArgs([]string{"echo", "a", "b"})
	require.Equal(t, len(d.DisplayLabel()), d.LabelLength())

	d2 := Descriptor{Label: "custom"}
	require.Equal(t, len("custom"), d2.LabelLength())
}

func TestMergeEnvs_PriorityOrder(t *testing.T) {
	parent := []string{"PATH=/usr/bin", "FOO=parent"}
	topLevel := map[string]string{"FOO": "top"}
	descriptor := []EnvPair{{Name: "FOO", Value: "descriptor"}}
	injected := []EnvPair{{Name: "FOO", Value: "injected"}}

	got := mergeEnvs(parent, topLevel, descriptor, injected)

	values := map[string]string{}
	var order []string
	for _, kv := range got {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				name := kv[:i]
				values[name] = kv[i+1:]
				order = append(order, name)
				break
			}
		}
	}
	require.Equal(t, "injected", values["FOO"])
	require.Equal(t, "/usr/bin", values["PATH"])
	require.Equal(t, []string{"PATH", "FOO"}, order)
}

func TestBuild_BareProgram(t *testing.T) {
	d := FromScript("true")
	cmd, lbl := Build(d, Options{MaxLabelLength: 4})
	require.Equal(t, "true", lbl.Display)
	require.Contains(t, cmd.Path, "true")
}

func TestBuild_InjectsColorEnv(t *testing.T) {
	d := FromScript("true")
	cmd, _ := Build(d, Options{MaxLabelLength: 4})

	found := map[string]bool{}
	for _, kv := range cmd.Env {
		if kv == "CARGO_TERM_COLOR=always" {
			found["CARGO_TERM_COLOR"] = true
		}
		if kv == "FORCE_COLOR=true" {
			found["FORCE_COLOR"] = true
		}
	}
	require.True(t, found["CARGO_TERM_COLOR"])
	require.True(t, found["FORCE_COLOR"])
}
