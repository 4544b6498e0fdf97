package research

import "unicode/utf8"

// truncateText shortens s to at most limit bytes, backing up so the cut
// never lands inside a multi-byte rune.
func truncateText(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
