// Package label implements the fixed-width display label rule shared by
// every command in a run: raw labels are truncated with a trailing-dots
// marker or right-padded with spaces so that tee'd output lines up.
package label

import "strings"

// Label pairs a command's raw display name with its width-normalized
// rendering.
type Label struct {
	Raw     string
	Display string
}

// Format derives display from raw and maxLen.
//
// Widths are measured in bytes of the raw string, not runes or terminal
// columns — multi-byte labels may over- or under-pad. This is an accepted
// limitation inherited from the reference implementation, not a bug.
func Format(raw string, maxLen int) Label {
	n := len(raw)
	switch {
	case n > maxLen:
		k := n - maxLen
		if k > 3 {
			k = 3
		}
		dots := strings.Repeat(".", k)
		return Label{Raw: raw, Display: raw[:maxLen-k] + dots}
	case n < maxLen:
		return Label{Raw: raw, Display: raw + strings.Repeat(" ", maxLen-n)}
	default:
		return Label{Raw: raw, Display: raw}
	}
}
