// Package label turns machine field names into human-friendly labels for
// prompts and default messages.
package label

import (
	"strings"
	"unicode"
)

// Humanize converts a field name such as "confirmPassword" or
// "billing_email" into "Confirm Password" / "Billing Email". It splits on
// underscores, dashes, whitespace, and lower-to-upper camelCase boundaries.
func Humanize(name string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	var prev rune
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current.WriteRune(r)
		case unicode.IsDigit(r) != unicode.IsDigit(prev) && current.Len() > 0 && prev != 0:
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	for idx, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[idx] = string(runes)
	}
	return strings.Join(words, " ")
}
