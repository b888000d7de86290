// Package calendar renders extracted events as iCalendar (RFC 5545) files.
package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

const (
	prodID      = "-//ClipSmart//Calendar Event//EN"
	uidDomain   = "clipsmart"
	stampLayout = "20060102T150405Z"
	crlf        = "\r\n"
	// maxLineOctets is the folding limit from RFC 5545 section 3.1.
	maxLineOctets = 75
)

// Builder renders events. The zero value is ready to use.
type Builder struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID defaults to uuid.NewString.
	NewID func() string
}

// Build returns a VCALENDAR holding a single VEVENT for ev.
func (b Builder) Build(ev domain.EventDetails, description string) string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	newID := uuid.NewString
	if b.NewID != nil {
		newID = b.NewID
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + newID() + "@" + uidDomain,
		"DTSTAMP:" + now().UTC().Format(stampLayout),
		"DTSTART:" + ev.StartDate,
		"DTEND:" + ev.EndDate,
		"SUMMARY:" + escapeText(ev.Summary),
		"DESCRIPTION:" + escapeText(description),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fold(l))
		sb.WriteString(crlf)
	}
	return sb.String()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// fold splits l into 75-octet lines joined by CRLF and a space, never
// cutting a UTF-8 sequence.
func fold(l string) string {
	if len(l) <= maxLineOctets {
		return l
	}

	var sb strings.Builder
	limit := maxLineOctets
	for len(l) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(l[cut]) {
			cut--
		}
		sb.WriteString(l[:cut])
		sb.WriteString(crlf + " ")
		l = l[cut:]
		// continuation lines lose one octet to the leading space
		limit = maxLineOctets - 1
	}
	sb.WriteString(l)
	return sb.String()
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
