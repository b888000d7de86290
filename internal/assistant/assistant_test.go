//nolint:testpackage // swaps the clock and inspects unexported helpers
package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

type fakeMessages struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   []anthropic.MessageNewParams
}

func (f *fakeMessages) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.calls)
	f.calls = append(f.calls, params)

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{{Type: "text", Text: reply}},
	}, nil
}

func testConfig() config.AssistantConfig {
	return config.AssistantConfig{
		APIKey:            "test",
		Model:             "test-model",
		MaxTokens:         256,
		Timeout:           time.Second,
		RequestsPerSecond: 1000,
		Burst:             10,
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		BreakerFailures:   5,
		BreakerReset:      time.Second,
	}
}

func newTestClient(t *testing.T, api *fakeMessages) *Client {
	t.Helper()

	c := NewWithAPI(api, testConfig(), logger.NewNop(), nil)
	c.now = func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := New(config.AssistantConfig{}, logger.NewNop(), nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestTranscribeLatex(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{replies: []string{"```latex\n\\frac{a}{b}\n```"}}
	c := newTestClient(t, api)

	got, err := c.TranscribeLatex(context.Background(), []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, `\frac{a}{b}`, got)

	require.Len(t, api.calls, 1)
	params := api.calls[0]
	assert.Equal(t, anthropic.Model("test-model"), params.Model)
	assert.Equal(t, int64(256), params.MaxTokens)
	require.Len(t, params.Messages, 1)
	require.Len(t, params.Messages[0].Content, 2)
	assert.NotNil(t, params.Messages[0].Content[0].OfImage)
	assert.NotNil(t, params.Messages[0].Content[1].OfText)
}

func TestTranscribeLatex_EmptyImage(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{}
	_, err := newTestClient(t, api).TranscribeLatex(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoImage)
	assert.Empty(t, api.calls)
}

func TestComplete_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{
		errs:    []error{errors.New("529 overloaded"), nil},
		replies: []string{"", "x^2"},
	}

	got, err := newTestClient(t, api).TranscribeLatex(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "x^2", got)
	assert.Len(t, api.calls, 2)
}

func TestComplete_PermanentErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{errs: []error{errors.New("400 invalid_request_error")}}

	_, err := newTestClient(t, api).TranscribeLatex(context.Background(), []byte("png"))
	require.Error(t, err)
	assert.Len(t, api.calls, 1)
}

func TestComplete_EmptyReply(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{replies: []string{"   "}}

	_, err := newTestClient(t, api).TranscribeLatex(context.Background(), []byte("png"))
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractEvent(t *testing.T) {
	t.Parallel()

	api := &fakeMessages{replies: []string{"```json\n" + `{
		"start_date": "20250916T140000Z",
		"end_date": "",
		"summary": "Lunch with Sam",
		"has_valid_date": true
	}` + "\n```"}}

	ev, err := newTestClient(t, api).ExtractEvent(context.Background(), "Lunch with Sam tomorrow at 2pm")
	require.NoError(t, err)

	assert.Equal(t, "20250916T140000Z", ev.StartDate)
	assert.Equal(t, "20250916T150000Z", ev.EndDate)
	assert.Equal(t, "Lunch with Sam", ev.Summary)
	assert.True(t, ev.HasValidDate)

	require.Len(t, api.calls, 1)
	prompt := api.calls[0].Messages[0].Content[0].OfText.Text
	assert.Contains(t, prompt, "2025-09-15T12:00:00Z")
	assert.Contains(t, prompt, "Lunch with Sam tomorrow at 2pm")
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	long := "A very long event title that certainly exceeds fifty characters"

	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr error
	}{
		{
			name:  "plain json",
			reply: `{"start_date":"20250101T090000Z","end_date":"20250101T100000Z","summary":"Kickoff","has_valid_date":true}`,
			want:  "Kickoff",
		},
		{
			name:  "summary defaulted",
			reply: `{"start_date":"20250101T090000Z","end_date":"20250101T100000Z","summary":" ","has_valid_date":true}`,
			want:  "Event",
		},
		{
			name:  "summary capped",
			reply: `{"start_date":"20250101T090000Z","end_date":"20250101T100000Z","summary":"` + long + `","has_valid_date":true}`,
			want:  long[:50],
		},
		{
			name:    "no date",
			reply:   `{"start_date":null,"end_date":null,"summary":"Event","has_valid_date":false}`,
			wantErr: ErrNoDate,
		},
		{
			name:    "bad start",
			reply:   `{"start_date":"next tuesday","has_valid_date":true}`,
			wantErr: ErrNoDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := ParseEvent(tt.reply)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.Summary)
		})
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseEvent("Sorry, I cannot help with that.")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoDate)
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":                     "plain",
		"```json\n{\"a\":1}\n```":   `{"a":1}`,
		"```\n\\int x\\,dx\n```":    `\int x\,dx`,
		"noise ```{\"a\":1}``` end": `{"a":1}`,
		"  padded  ":                "padded",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripFences(in), "input %q", in)
	}
}
