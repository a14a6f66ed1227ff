// Package ansiline rewrites CSI cursor-control escape sequences on a
// single line of child output so that they behave sensibly once the line
// has been prefixed with "[label] " by the tee pipeline, instead of
// clobbering the label itself.
package ansiline

import "strconv"

const (
	esc = 0x1B
)

// Rewrite rewrites line (which must not contain an embedded newline)
// given prefixWidth, the number of columns consumed by "[label] " before
// the child's own text begins.
//
//   - "Erase line" sequences ESC[1K and ESC[2K are stripped.
//   - Cursor up/down/prev-line/next-line, erase-in-display, and full
//     cursor-position (ESC[n;mH) sequences are stripped.
//   - Cursor-horizontal-absolute ESC[nG has n biased by prefixWidth.
//   - Cursor-position ESC[r;cH (and bare ESC[H) is stripped like the
//     other motion sequences; it is not rewritten into a column move.
//   - Lines without ESC[ are returned unchanged (fast path).
func Rewrite(line string, prefixWidth int) string {
	if !containsCSI(line) {
		return line
	}

	var out []byte
	i := 0
	for i < len(line) {
		if line[i] == esc && i+1 < len(line) && line[i+1] == '[' {
			if consumed, rewritten, ok := rewriteCSI(line[i:], prefixWidth); ok {
				out = append(out, rewritten...)
				i += consumed
				continue
			}
		}
		out = append(out, line[i])
		i++
	}
	return string(out)
}

func containsCSI(line string) bool {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == esc && line[i+1] == '[' {
			return true
		}
	}
	return false
}

// rewriteCSI attempts to parse a single CSI sequence starting at s[0:2]
// == ESC '['. On success it returns how many bytes of s the sequence
// occupied, the bytes it should be replaced with, and true. On failure
// (not a sequence this rewriter recognizes) it returns ok=false and the
// caller emits the ESC byte verbatim and advances by one.
func rewriteCSI(s string, prefixWidth int) (consumed int, rewritten []byte, ok bool) {
	// s[0]==ESC, s[1]=='['
	i := 2
	paramStart := i
	for i < len(s) && isDigitOrSemicolon(s[i]) {
		i++
	}
	if i >= len(s) {
		return 0, nil, false
	}
	final := s[i]
	params := s[paramStart:i]
	seqLen := i + 1

	switch final {
	case 'K':
		// Erase line: only "1K"/"2K" (with no further params) are stripped.
		if params == "1" || params == "2" {
			return seqLen, nil, true
		}
		return 0, nil, false
	case 'A', 'B', 'J', 'E', 'F':
		// Cursor up/down, erase-in-display, cursor next/prev line: strip
		// regardless of the (optional) numeric parameter.
		if isAllDigits(params) {
			return seqLen, nil, true
		}
		return 0, nil, false
	case 'H':
		// ESC[r;cH (cursor position) is stripped, not rewritten: the
		// leading \d* in the erase/position removal pattern always
		// consumes any row digits before the semicolon, so a full
		// "r;cH" sequence never survives to reach a column-biasing
		// rewrite. Bare ESC[H (no params) is stripped the same way.
		if _, _, ok := splitRowCol(params); ok {
			return seqLen, nil, true
		}
		return 0, nil, false
	case 'G':
		n := parseOrDefault(params, 1)
		return seqLen, []byte("\x1b[" + strconv.Itoa(n+prefixWidth) + "G"), true
	default:
		return 0, nil, false
	}
}

func isDigitOrSemicolon(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';'
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// splitRowCol splits "r;c" into row and col, requiring exactly one
// semicolon and all-digit components (possibly empty).
func splitRowCol(params string) (row, col string, ok bool) {
	idx := -1
	for i := 0; i < len(params); i++ {
		if params[i] == ';' {
			if idx != -1 {
				return "", "", false
			}
			idx = i
		}
	}
	if idx == -1 {
		// No semicolon at all — only the bare "H" (empty params) is valid
		// here; a lone row with no column is not a recognized form.
		if params == "" {
			return "", "", true
		}
		return "", "", false
	}
	row, col = params[:idx], params[idx+1:]
	if !isAllDigits(row) || !isAllDigits(col) {
		return "", "", false
	}
	return row, col, true
}

func parseOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
