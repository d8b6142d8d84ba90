package utils

// TruncateRunes shortens s to at most max runes, appending "..." when it
// cuts. Truncating on rune boundaries keeps multi-byte characters intact.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
