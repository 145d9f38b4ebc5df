package sentiment

import (
	"strings"
	"unicode"
)

// CleanText lowercases text, drops everything that is not an ASCII letter or
// whitespace, and collapses whitespace runs into single spaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Words returns the tokens of already cleaned text.
func Words(clean string) []string {
	return strings.Fields(clean)
}
