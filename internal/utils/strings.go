package utils

// TruncateRunes shortens s to at most max runes, never cutting inside a
// multi-byte character.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
