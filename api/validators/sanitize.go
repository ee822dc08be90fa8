package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps free-text input such
// as donor names and messages. Truncation counts runes, not bytes, so a cut
// never leaves a broken multibyte character in the database.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) <= maxLen {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:maxLen]))
}
