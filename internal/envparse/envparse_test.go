package envparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeadingEnvs_NoEnv(t *testing.T) {
	for _, tc := range []struct{ in, rest string }{
		{"", ""},
		{"   ", ""},
		{"cargo", "cargo"},
		{"cargo run", "cargo run"},
		{"cargo   run", "cargo   run"},
		{"   cargo run", "cargo run"},
		{"cargo run   ", "cargo run"},
		{" cargo   run  ", "cargo   run"},
	} {
		pairs, rest := ParseLeadingEnvs(tc.in)
		require.Empty(t, pairs, "input=%q", tc.in)
		require.Equal(t, tc.rest, rest, "input=%q", tc.in)
	}
}

func TestParseLeadingEnvs_Malformed(t *testing.T) {
	for _, program := range []string{
		"A=",
		"A= cargo run",
		`A="\ "`,
		`A='B\xa' cargo run`,
		`A='B\x80' cargo run`,
		`A='B\u' cargo run`,
		`A='B\u1' cargo run`,
		`A='B\u{110000}' cargo run`,
		`A='B\u{fffffffff}' cargo run`,
		`A='B cargo run`,
		`A='B'cargo run`,
	} {
		pairs, rest := ParseLeadingEnvs(program)
		require.Empty(t, pairs, "input=%q", program)
		require.Equal(t, program, rest, "input=%q", program)
	}
}

func TestParseLeadingEnvs_OK(t *testing.T) {
	for _, tc := range []struct {
		in, k, v, rest string
	}{
		{"K=V cargo", "K", "V", "cargo"},
		{"  K=V  cargo   ", "K", "V", "cargo"},
		{"  K=V  cargo  run ", "K", "V", "cargo  run"},
		{"k='v k2=v2' cargo  run ", "k", "v k2=v2", "cargo  run"},
		{
			"k='v\\n\\t\\r\\0\\'\" k2=v2' cargo  run ",
			"k", "v\n\t\r\x00'\" k2=v2", "cargo  run",
		},
		{
			`k="v\n\t\r\0'\" k2=v2" cargo  run `,
			"k", "v\n\t\r\x00'\" k2=v2", "cargo  run",
		},
		{
			`SOME_KEY="\x26\x20\x7f" cargo run`,
			"SOME_KEY", "& \x7f", "cargo run",
		},
		{
			"SOME_KEY=\"\\u{20}\\u{1F600}\\u{10ffff}\" cargo run",
			"SOME_KEY", " \U0001F600\U0010FFFF", "cargo run",
		},
	} {
		pairs, rest := ParseLeadingEnvs(tc.in)
		require.Len(t, pairs, 1, "input=%q", tc.in)
		require.Equal(t, tc.k, pairs[0].Name, "input=%q", tc.in)
		require.Equal(t, tc.v, pairs[0].Value, "input=%q", tc.in)
		require.Equal(t, tc.rest, rest, "input=%q", tc.in)
	}
}

func TestParseLeadingEnvs_NoTrailingSeparator(t *testing.T) {
	// A value with nothing after it never commits, matching the
	// original state machine: it only closes a KeyAndValue state on a
	// following whitespace run, never on end of input.
	for _, program := range []string{"K=V", "K='V'", `K="V"`} {
		pairs, rest := ParseLeadingEnvs(program)
		require.Empty(t, pairs, "input=%q", program)
		require.Equal(t, program, rest, "input=%q", program)
	}
}

func TestParseLeadingEnvs_MultiplePairs(t *testing.T) {
	pairs, rest := ParseLeadingEnvs("k=v k2=v2 cargo  run ")
	require.Equal(t, []Pair{{"k", "v"}, {"k2", "v2"}}, pairs)
	require.Equal(t, "cargo  run", rest)
}

func TestParseLeadingEnvs_Lexer6Example(t *testing.T) {
	pairs, rest := ParseLeadingEnvs(`K="\x26\u{20}" cargo`)
	require.Equal(t, []Pair{{"K", "& "}}, pairs)
	require.Equal(t, "cargo", rest)
}

func TestParseLeadingEnvs_Lexer5Example(t *testing.T) {
	pairs, rest := ParseLeadingEnvs("A= cargo run")
	require.Empty(t, pairs)
	require.Equal(t, "A= cargo run", rest)
}
