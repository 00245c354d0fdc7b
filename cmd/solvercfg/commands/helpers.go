package commands

import "strings"

// truncate collapses whitespace in s, which may be multi-line help text,
// and shortens it to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= maxLen {
		return string(r)
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
