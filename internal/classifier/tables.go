package classifier

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// literalSet answers "does the text contain any of these literals" in a single
// Aho-Corasick pass. Sets are package-level and shared by every goroutine, so
// lookups go through MatchThreadSafe; Match mutates per-node counters.
type literalSet struct {
	words   []string
	matcher *ahocorasick.Matcher
}

func newLiteralSet(words ...string) *literalSet {
	return &literalSet{
		words:   words,
		matcher: ahocorasick.NewStringMatcher(words),
	}
}

func (s *literalSet) in(text string) bool {
	if text == "" {
		return false
	}
	return len(s.matcher.MatchThreadSafe([]byte(text))) > 0
}

// compileFold compiles case-insensitive patterns.
func compileFold(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

func anyMatch(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// alternation joins words into a regexp alternation, quoting each one.
func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// lower folds text with full Unicode rules. Casers keep internal state, so
// each call gets its own.
func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}
