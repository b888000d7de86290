package classifier

import (
	"regexp"
	"strings"
)

var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// timeMarkers are meridiem and zone suffixes accepted after a clock time.
var timeMarkers = []string{"am", "pm", "est", "pst", "cst", "mst", "gmt", "utc"}

// Numeric layouts. Month-first and day-first overlap on purpose; the detector
// only needs to know that some date is present.
var numericDatePatterns = compileFold(
	`\b(0?[1-9]|1[0-2])[/\-.](0?[1-9]|[12][0-9]|3[01])[/\-.](\d{4})\b`,
	`\b(0?[1-9]|[12][0-9]|3[01])[/\-.](0?[1-9]|1[0-2])[/\-.](\d{4})\b`,
	`\b(\d{4})[/\-.](0?[1-9]|1[0-2])[/\-.](0?[1-9]|[12][0-9]|3[01])\b`,
	`\b(0?[1-9]|1[0-2])[/\-.](0?[1-9]|[12][0-9]|3[01])[/\-.](\d{2})\b`,
	`\b(0?[1-9]|[12][0-9]|3[01])[/\-.](0?[1-9]|1[0-2])[/\-.](\d{2})\b`,
	`\b\d{4}-\d{2}-\d{2}\b`,
	`\b\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}(:\d{2})?\b`,
)

var writtenDatePatterns = func() []*regexp.Regexp {
	m := alternation(months)
	t := alternation(timeMarkers)
	day := `(0?[1-9]|[12][0-9]|3[01])`

	return compileFold(
		// September 18th, 2025
		`\b(`+m+`)\s+`+day+`(st|nd|rd|th)?,?\s+(\d{4})\b`,
		// 18 September 2025
		`\b`+day+`\s+(`+m+`)\s+(\d{4})\b`,
		// September 2025
		`\b(`+m+`)\s+(\d{4})\b`,
		// 18 September
		`\b`+day+`\s+(`+m+`)\b`,
		// September 18th
		`\b(`+m+`)\s+`+day+`(st|nd|rd|th)?\b`,
		// 1pm, 01:30PM, 12:45 am, 15:30
		`\b(`+
			`([1-9]|1[0-2])(:[0-5][0-9])?\s*(`+t+`)`+
			`|([1-9]|1[0-2]):([0-5][0-9])\s*(`+t+`)?`+
			`|([01]?[0-9]|2[0-3]):([0-5][0-9])\s*(`+t+`)?`+
			`)\b`,
	)
}()

var relativeDates = newLiteralSet(
	"today", "tomorrow", "yesterday",
	"next week", "last week", "next month", "last month", "next year", "last year",
	"this morning", "this afternoon", "this evening", "tonight",
)

// IsDate reports whether text mentions a calendar date, a clock time or a
// relative day such as "tomorrow".
func IsDate(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if anyMatch(numericDatePatterns, text) || anyMatch(writtenDatePatterns, text) {
		return true
	}

	return relativeDates.in(lower(text))
}
