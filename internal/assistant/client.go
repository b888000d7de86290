// Package assistant talks to the Anthropic Messages API for the two tasks the
// classifier cannot do locally: transcribing formula screenshots to LaTeX and
// pulling event dates out of free text.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/ZinnunMalikov/clipsmart-main/internal/circuitbreaker"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/retry"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

var (
	// ErrNotConfigured is returned by New when no API key is set.
	ErrNotConfigured = errors.New("assistant: no API key configured")
	// ErrEmptyResponse means the model returned no text.
	ErrEmptyResponse = errors.New("assistant: empty response")
)

// MessagesAPI is the slice of the Anthropic client used here.
type MessagesAPI interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client is safe for concurrent use.
type Client struct {
	api       MessagesAPI
	model     string
	maxTokens int64
	timeout   time.Duration
	limiter   *rate.Limiter
	breaker   *circuitbreaker.Breaker
	retry     retry.Config
	logger    logger.Logger
	telemetry *telemetry.Provider
	now       func() time.Time
}

// New builds a Client backed by the Anthropic SDK.
func New(cfg config.AssistantConfig, log logger.Logger, tp *telemetry.Provider) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	sdk := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		// retries are handled here so they share the breaker and limiter
		option.WithMaxRetries(0),
	)
	return NewWithAPI(&sdk.Messages, cfg, log, tp), nil
}

// NewWithAPI builds a Client around any MessagesAPI implementation.
func NewWithAPI(api MessagesAPI, cfg config.AssistantConfig, log logger.Logger, tp *telemetry.Provider) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		api:       api,
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1)),
		breaker: circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.BreakerFailures,
			Timeout:          cfg.BreakerReset,
			OnStateChange: func(from, to circuitbreaker.State) {
				log.Warn("Assistant circuit breaker state changed",
					logger.String("from", from.String()),
					logger.String("to", to.String()))
			},
		}),
		retry: retry.Config{
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: cfg.InitialBackoff,
		},
		logger:    log,
		telemetry: tp,
		now:       time.Now,
	}
}

// complete sends one user turn and returns the concatenated text reply.
func (c *Client) complete(
	ctx context.Context,
	operation, system string,
	blocks ...anthropic.ContentBlockParamUnion,
) (string, error) {
	ctx, span := c.telemetry.StartSpan(ctx, "assistant."+operation)
	defer span.End()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}

	start := time.Now()
	var reply string

	err := retry.Do(ctx, c.retry, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		return c.breaker.Execute(ctx, func(ctx context.Context) error {
			callCtx := ctx
			if c.timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, c.timeout)
				defer cancel()
			}

			msg, err := c.api.New(callCtx, params)
			if err != nil {
				return err
			}
			reply = messageText(msg)
			return nil
		})
	})

	elapsed := time.Since(start)
	c.telemetry.RecordAssistantCall(operation, err == nil, elapsed)

	if err != nil {
		span.RecordError(err)
		c.logger.Error("Assistant call failed",
			logger.String("operation", operation),
			logger.Duration("duration", elapsed),
			logger.Error(err))
		return "", fmt.Errorf("assistant %s: %w", operation, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("Assistant call completed",
		logger.String("operation", operation),
		logger.Duration("duration", elapsed),
		logger.Int("reply_length", len(reply)))

	return reply, nil
}

func messageText(msg *anthropic.Message) string {
	if msg == nil {
		return ""
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// stripFences returns the body of the first ``` fenced block in s, dropping
// an optional language tag. Text without fences is returned trimmed.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	_, rest, found := strings.Cut(s, "```")
	if !found {
		return s
	}

	// drop the info string ("json", "latex") up to the first newline
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{}\\") {
		rest = rest[nl+1:]
	}

	body, _, _ := strings.Cut(rest, "```")
	return strings.TrimSpace(body)
}
