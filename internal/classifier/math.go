package classifier

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// mathSymbols is matched case-sensitively against the raw sample. It includes
// "/" and "-", so URLs and hyphenated words count as math here; callers that
// care gate on the link verdict.
var mathSymbols = newLiteralSet(
	// arithmetic
	"+", "-", "*", "/", "×", "÷", "=", "^", "**", "±", "∓",
	// comparison
	"<", ">", "≤", "≥", "≠", "≈", "≡", "∝", "∼", "≅",
	// sets
	"∈", "∉", "⊂", "⊃", "⊆", "⊇", "∩", "∪", "∅", "⊊", "⊋",
	// calculus and Greek letters
	"√", "∛", "∜", "∫", "∬", "∭", "∮", "∑", "∏", "∂", "∆", "∇",
	"∞", "π", "α", "β", "γ", "δ", "ε", "θ", "λ", "μ", "σ", "φ", "ψ", "ω",
	// logic
	"∧", "∨", "¬", "→", "↔", "⊕", "⊗",
	// misc
	"°", "′", "″", "‰", "%", "∠", "⊥", "∥", "⟂",
)

// mathFunctions are substring matches, not words: "single" contains "sin".
var mathFunctions = newLiteralSet(
	"sin", "cos", "tan", "sec", "csc", "cot", "sinh", "cosh", "tanh",
	"arcsin", "arccos", "arctan", "asin", "acos", "atan",
	"log", "ln", "exp", "sqrt", "abs", "max", "min", "floor", "ceil",
	"factorial", "gamma", "beta", "mod", "gcd", "lcm",
)

var mathKeywords = newLiteralSet(
	"vector", "matrix", "determinant", "eigenvalue", "eigenvector",
	"transpose", "inverse", "rank", "trace", "norm", "dot", "cross",
	"derivative", "integral", "limit", "series", "sequence", "convergence",
	"function", "domain", "range", "continuous", "differentiable",
	"theorem", "proof", "lemma", "corollary", "axiom",
	"set", "subset", "union", "intersection", "complement", "cardinality",
	"probability", "statistics", "variance", "deviation", "distribution",
	"algebra", "geometry", "calculus", "topology", "analysis",
)

var mathNotation = compileFold(
	`\b\d+/\d+\b`,                              // 3/4
	`\([^)]+\)/\([^)]+\)`,                      // (x+1)/(y-1)
	`[a-zA-Z0-9]+\^[a-zA-Z0-9]+`,               // x^2
	`[a-zA-Z]+_[a-zA-Z0-9]+`,                   // x_1
	`[a-zA-Z]+\([^)]*\)`,                       // f(x)
	`[a-zA-Z]+\s*=\s*[^=]+`,                    // y = 2x + 1
	`\([^)]*[+\-*/^][^)]*\)`,                   // (2n-1)
	`\d+\.?\d*[eE][+-]?\d+`,                    // 1.5e-10
	`[\[\{]\s*[^,\]\}]*,\s*[^,\]\}]*\s*[\]\}]`, // [0,1]
	`[∑Σ].*[=].*\^`,                            // Σ_{i=1}^n
	`\|[^|]+\|`,                                // |x|
	`[a-zA-Z]_[a-zA-Z0-9]+`,                    // a_n
	`\[\s*\[.*\].*\]`,                          // [[a,b],[c,d]]
	`<[^>]*,.*>`,                               // <1,2,3>
	`[a-zA-Z]+'+`,                              // f''
	`\d+°`,                                     // 90°
	`\d+\.?\d*%`,                               // 25%
)

const (
	mathDensityChars     = "0123456789+-*/=<>()[]{}^"
	mathDensityThreshold = 0.3
)

var singleVariable = regexp.MustCompile(`^\s*[a-zA-Z]\s*$`)

// IsMath reports whether text looks like a formula or mathematical prose.
// Checks run cheapest first and stop at the first hit.
func IsMath(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if mathSymbols.in(text) {
		return true
	}

	folded := lower(text)
	if mathFunctions.in(folded) || mathKeywords.in(folded) {
		return true
	}

	if anyMatch(mathNotation, text) {
		return true
	}

	if mathDensity(text) > mathDensityThreshold {
		return true
	}

	return singleVariable.MatchString(text)
}

// mathDensity is the share of characters in text drawn from mathDensityChars.
func mathDensity(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}

	hits := 0
	for _, r := range text {
		if strings.ContainsRune(mathDensityChars, r) {
			hits++
		}
	}
	return float64(hits) / float64(total)
}
