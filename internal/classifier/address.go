package classifier

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var streetTypes = []string{
	"street", "st", "avenue", "ave", "road", "rd", "boulevard", "blvd",
	"lane", "ln", "drive", "dr", "court", "ct", "circle", "cir",
	"place", "pl", "way", "parkway", "pkwy", "highway", "hwy",
	"trail", "terrace", "ter", "square", "sq", "plaza",
}

var unitMarkers = []string{
	"apt", "apartment", "unit", "suite", "ste", "floor", "fl",
	"room", "rm", "building", "bldg", "#",
}

var (
	// streetTypeWord matches a street type as a whole word.
	streetTypeWord = regexp.MustCompile(`\b(?:` + alternation(streetTypes) + `)\b`)

	// streetTypeAnywhere ignores word boundaries; "st" hits "first".
	streetTypeAnywhere = newLiteralSet(streetTypes...)

	directionals = newLiteralSet(
		"north", "south", "east", "west",
		"northeast", "northwest", "southeast", "southwest",
		"ne", "nw", "se", "sw",
	)

	units = newLiteralSet(unitMarkers...)

	countries = newLiteralSet(
		"usa", "united states", "canada", "uk", "united kingdom",
		"australia", "france", "germany", "japan", "china", "india",
	)
)

// countryMinLength keeps short mentions like "japan" from counting.
const countryMinLength = 20

var addressPatterns = func() []*regexp.Regexp {
	st := alternation(streetTypes)

	return compileFold(
		`\b\d+\s+[A-Za-z\s]+\s+(`+st+`)\b`,                  // 123 Main St
		`\b\d{5}(-\d{4})?\b`,                                // 30332, 30332-0001
		`\b[A-Z]\d[A-Z]\s*\d[A-Z]\d\b`,                      // K1A 0A6
		`\b[A-Z]{1,2}\d[A-Z]?\s*\d[A-Z]{2}\b`,               // SW1A 1AA
		`\b(p\.?o\.?\s*box|post\s*office\s*box)\s*\d+\b`,    // P.O. Box 123
		`\b(`+alternation(unitMarkers)+`)\s*[A-Za-z0-9]+\b`, // Apt 5
		`\b\d+[A-Za-z]?\s+[A-Za-z\s]+\s+(`+st+`)\b`,         // 123A Main St
	)
}()

var (
	// stateCode is case-sensitive: "GA" counts, "ga" does not.
	stateCode      = regexp.MustCompile(`\b[A-Z]{2}\b`)
	zipCode        = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	standaloneNums = regexp.MustCompile(`\b\d+\b`)
)

// IsAddress reports whether text looks like a postal address or a fragment
// of one.
func IsAddress(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	folded := lower(text)

	if streetTypeWord.MatchString(folded) {
		return true
	}

	hasStreetType := streetTypeAnywhere.in(folded)
	if hasStreetType && directionals.in(folded) {
		return true
	}

	if units.in(folded) {
		return true
	}

	if countries.in(folded) && utf8.RuneCountInString(text) > countryMinLength {
		return true
	}

	if anyMatch(addressPatterns, text) {
		return true
	}

	if trailingRegionPart(text) {
		return true
	}

	return hasStreetType && len(standaloneNums.FindAllStringIndex(text, 2)) >= 2
}

// trailingRegionPart checks the last two comma separated parts for a state
// code or ZIP, as in "Atlanta, GA 30332".
func trailingRegionPart(text string) bool {
	if !strings.Contains(text, ",") {
		return false
	}

	parts := strings.Split(text, ",")
	for _, part := range parts[len(parts)-2:] {
		part = strings.TrimSpace(part)
		if stateCode.MatchString(part) || zipCode.MatchString(part) {
			return true
		}
	}
	return false
}
