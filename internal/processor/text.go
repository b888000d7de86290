// Package processor normalizes clipboard text and classifies samples in bulk.
package processor

import (
	"strings"
	"unicode/utf8"
)

const previewRunes = 100

// ProcessText undoes the escaping clipboard clients apply before sending:
// `\\` becomes `\`, a literal `\n` becomes a newline, `\"` becomes `"`.
// Replacements run in that order.
func ProcessText(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.ReplaceAll(s, `\"`, `"`)
}

// Preview returns the first 100 characters of s, marked with "..." when cut.
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "..."
}
