package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

// ICSTimeLayout is the UTC basic format used for event start and end.
const ICSTimeLayout = "20060102T150405Z"

const (
	maxSummaryLength = 50
	defaultSummary   = "Event"
	defaultDuration  = time.Hour
)

// ErrNoDate means the text held no date the model could resolve.
var ErrNoDate = errors.New("could not extract valid date from text")

const eventSystemPrompt = "You extract calendar events from text and answer with JSON only."

const eventPromptTemplate = `Extract date and time information from the following text and provide it in the exact JSON format below.
If the text contains only a date without time, assume 9:00 AM for start time and 10:00 AM for end time.
If end time is not specified, make it 1 hour after start time.
Resolve relative dates against the current time: %s.

Text: %q

Return ONLY valid JSON in this exact format:
{
  "start_date": "YYYYMMDDTHHMMSSZ",
  "end_date": "YYYYMMDDTHHMMSSZ",
  "summary": "Brief event title (max 50 chars)",
  "has_valid_date": true
}

Important:
- Use UTC format (Z suffix)
- If no valid date found, set has_valid_date to false
- Summary should be a short, descriptive title for the event
- Convert all times to 24-hour format`

// ExtractEvent asks the model for the event described by text. It returns
// ErrNoDate when the model finds no usable date.
func (c *Client) ExtractEvent(ctx context.Context, text string) (domain.EventDetails, error) {
	prompt := fmt.Sprintf(eventPromptTemplate, c.now().UTC().Format(time.RFC3339), text)

	reply, err := c.complete(ctx, "extract_event", eventSystemPrompt, anthropic.NewTextBlock(prompt))
	if err != nil {
		return domain.EventDetails{}, err
	}

	return ParseEvent(reply)
}

// ParseEvent decodes and normalizes a model reply. The end defaults to one
// hour after the start and the summary is capped at 50 characters.
func ParseEvent(reply string) (domain.EventDetails, error) {
	var ev domain.EventDetails
	if err := json.Unmarshal([]byte(stripFences(reply)), &ev); err != nil {
		return domain.EventDetails{}, fmt.Errorf("decode event reply: %w", err)
	}

	if !ev.HasValidDate {
		return domain.EventDetails{}, ErrNoDate
	}

	start, err := time.Parse(ICSTimeLayout, strings.TrimSpace(ev.StartDate))
	if err != nil {
		return domain.EventDetails{}, fmt.Errorf("%w: start %q", ErrNoDate, ev.StartDate)
	}

	end, err := time.Parse(ICSTimeLayout, strings.TrimSpace(ev.EndDate))
	if err != nil || !end.After(start) {
		end = start.Add(defaultDuration)
	}

	ev.StartDate = start.Format(ICSTimeLayout)
	ev.EndDate = end.Format(ICSTimeLayout)
	ev.Summary = truncateRunes(strings.TrimSpace(ev.Summary), maxSummaryLength)
	if ev.Summary == "" {
		ev.Summary = defaultSummary
	}

	return ev, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
