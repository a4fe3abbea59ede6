package extract

import "strings"

// docLookback is how many lines above a declaration are searched for its
// doc comment
const docLookback = 10

// DocComment returns the doc comment attached to the declaration on the
// given 1-based line. It walks upward collecting `///` and `//!` lines and
// skipping plain `//` comments; a blank line or any code ends the walk.
// Collected lines are joined with single spaces in source order.
func DocComment(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	var doc []string
	stop := line - 1 - docLookback
walk:
	for i := line - 2; i >= 0 && i >= stop; i-- {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, "///"), strings.HasPrefix(trimmed, "//!"):
			doc = append(doc, strings.TrimSpace(trimmed[3:]))
		case strings.HasPrefix(trimmed, "//"):
		default:
			// blank line or code
			break walk
		}
	}

	for l, r := 0, len(doc)-1; l < r; l, r = l+1, r-1 {
		doc[l], doc[r] = doc[r], doc[l]
	}
	return strings.Join(doc, " ")
}
