package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		raw     string
		max     int
		display string
	}{
		{"echo a", 6, "echo a"},
		{"a", 6, "a     "},
		{"a-very-long-label-name", 10, "a-very-..."},
		{"ab", 10, "ab        "},
		{"", 0, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "abc."},
	} {
		got := Format(tc.raw, tc.max)
		require.Equal(t, tc.raw, got.Raw)
		require.Equal(t, tc.display, got.Display, "raw=%q max=%d", tc.raw, tc.max)
		require.Len(t, got.Display, tc.max, "raw=%q max=%d", tc.raw, tc.max)
	}
}
