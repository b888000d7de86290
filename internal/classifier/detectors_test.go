package classifier_test

import (
	"testing"

	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
)

type detectorCase struct {
	name  string
	input string
	want  bool
}

func runDetectorCases(t *testing.T, detect classifier.Detector, tests []detectorCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detect(tt.input); got != tt.want {
				t.Errorf("detect(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsLink(t *testing.T) {
	t.Parallel()

	runDetectorCases(t, classifier.IsLink, []detectorCase{
		{"https url", "https://example.com/path", true},
		{"http url with query", "http://example.com/a?b=c#d", true},
		{"uppercase scheme", "HTTPS://EXAMPLE.COM", true},
		{"ftp url", "ftp://files.example.org/pub", true},
		{"bare domain", "example.com", true},
		{"bare domain with path", "example.com/docs/intro", true},
		{"www prefix", "www.google.com", true},
		{"mailto", "mailto:someone@example.com", true},
		{"embedded scheme", "see http://x.y for details", true},
		{"embedded www", "visit www.example.com today", true},
		{"padded", "   https://example.com   ", true},
		{"plain prose", "not a link", false},
		{"empty", "", false},
		{"blank", "   ", false},
		{"scheme without host", "https:// example", true},
		{"single word", "example", false},
		{"short tld", "example.c", false},
	})
}

func TestIsDate(t *testing.T) {
	t.Parallel()

	runDetectorCases(t, classifier.IsDate, []detectorCase{
		{"iso", "2024-01-15", true},
		{"iso with time", "2024-01-15T10:30:00", true},
		{"us slashes", "12/25/2023", true},
		{"day first dots", "25.12.2023", true},
		{"year first", "2023/12/25", true},
		{"two digit year", "1-5-24", true},
		{"month day year", "March 5th, 2024", true},
		{"abbreviated month", "Jan 5 2024", true},
		{"day month year", "5 March 2024", true},
		{"month year", "September 2025", true},
		{"day month", "18 September", true},
		{"month day", "Thursday, September 18th", true},
		{"meridiem", "call me at 3pm", true},
		{"meridiem with minutes", "12:45 am", true},
		{"zone", "9 EST", true},
		{"24 hour", "15:30", true},
		{"relative", "let's meet tomorrow", true},
		{"relative phrase", "Due NEXT WEEK", true},
		{"tonight", "dinner tonight?", true},
		// \s is ASCII-only, so a no-break space does not separate month and day.
		{"no-break space", "Jan\u00a05, 2024", false},
		{"ascii space", "Jan 5, 2024", true},
		{"plain prose", "The cat sat", false},
		{"bare number", "Order 42", false},
		{"empty", "", false},
	})
}

func TestIsMath(t *testing.T) {
	t.Parallel()

	runDetectorCases(t, classifier.IsMath, []detectorCase{
		{"equation", "x^2 + y^2 = r^2", true},
		{"fraction symbol", "3/4", true},
		{"greek", "area is πr²", true},
		{"integral", "∫ f dx", true},
		{"function name", "sqrt of 16", true},
		{"function notation", "f(x)", true},
		{"keyword", "find the eigenvalue", true},
		{"degree", "90°", true},
		{"density", "(12)(34)", true},
		{"single letter", "x", true},
		{"padded single letter", "  n  ", true},
		// substring match, kept as is
		{"function name inside word", "single", true},
		{"plain prose", "hello world", false},
		{"greeting", "Hello there", false},
		{"empty", "", false},
		{"blank", " \t ", false},
	})
}

func TestIsMath_EverySymbolDoesNotPanic(t *testing.T) {
	t.Parallel()

	symbols := []string{
		"+", "-", "*", "/", "×", "÷", "=", "^", "**", "±", "∓",
		"<", ">", "≤", "≥", "≠", "≈", "≡", "∝", "∼", "≅",
		"∈", "∉", "⊂", "⊃", "⊆", "⊇", "∩", "∪", "∅", "⊊", "⊋",
		"√", "∛", "∜", "∫", "∬", "∭", "∮", "∑", "∏", "∂", "∆", "∇",
		"∞", "π", "α", "β", "γ", "δ", "ε", "θ", "λ", "μ", "σ", "φ", "ψ", "ω",
		"∧", "∨", "¬", "→", "↔", "⊕", "⊗",
		"°", "′", "″", "‰", "%", "∠", "⊥", "∥", "⟂",
	}
	for _, s := range symbols {
		if !classifier.IsMath(s) {
			t.Errorf("IsMath(%q) = false, want true", s)
		}
		classifier.Classify(s)
	}
}

func TestIsAddress(t *testing.T) {
	t.Parallel()

	runDetectorCases(t, classifier.IsAddress, []detectorCase{
		{"street with directional", "349 Ferst Dr NW, Atlanta, GA 30332", true},
		{"street type word", "123 Main Street", true},
		{"abbreviated street", "5 Main St", true},
		{"po box", "P.O. Box 123", true},
		{"unit", "Apt 5B", true},
		{"hash unit", "#12", true},
		{"canadian postal code", "K1A 0A6", true},
		{"uk postal code", "SW1A 1AA", true},
		{"zip", "30332", true},
		{"zip plus four", "30332-1234", true},
		{"country in long text", "Shipping to Japan from Canada", true},
		{"comma and state", "Springfield, IL", true},
		{"country alone is too short", "Japan", false},
		{"plain prose", "hello world", false},
		{"url", "https://example.com/path", false},
		{"empty", "", false},
	})
}
