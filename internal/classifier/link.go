package classifier

import "strings"

// linkPatterns must match the whole trimmed sample.
var linkPatterns = compileFold(
	// http(s); the first host character may not be a separator
	`^https?://[^\s/$.?#].[^\s]*$`,
	`^ftp://[^\s/$.?#].[^\s]*$`,
	// bare domain with optional path: example.com/path
	`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.([a-zA-Z]{2,})(/[^\s]*)?$`,
	`^www\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.[a-zA-Z]{2,}(/[^\s]*)?$`,
	`^mailto:[^\s@]+@[^\s@]+\.[^\s@]+$`,
)

var linkIndicators = newLiteralSet("http://", "https://", "ftp://", "www.", "mailto:")

// IsLink reports whether text looks like a hyperlink, either as a whole
// (URL, bare domain, mailto) or by embedding a scheme or www. prefix.
func IsLink(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if anyMatch(linkPatterns, text) {
		return true
	}

	return linkIndicators.in(lower(text))
}
