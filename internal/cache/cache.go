// Package cache stores assistant results in Redis so repeated screenshots and
// repeated calendar text do not trigger new model calls.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

const (
	keyPrefix      = "clipsmart:"
	latexNamespace = "latex"
	eventNamespace = "event"
	pingTimeout    = 5 * time.Second
)

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Cache is safe for concurrent use.
type Cache struct {
	rdb       *redis.Client
	latexTTL  time.Duration
	eventTTL  time.Duration
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// New wraps an existing client.
func New(rdb *redis.Client, cfg config.RedisConfig, log logger.Logger, tp *telemetry.Provider) *Cache {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cache{
		rdb:       rdb,
		latexTTL:  cfg.TranscriptionTTL,
		eventTTL:  cfg.EventExtractTTL,
		logger:    log,
		telemetry: tp,
	}
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

func latexKey(imageHash string) string {
	return keyPrefix + latexNamespace + ":" + imageHash
}

func eventKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + eventNamespace + ":" + hex.EncodeToString(sum[:])
}

// Latex returns the cached transcription for a screenshot hash.
func (c *Cache) Latex(ctx context.Context, imageHash string) (string, error) {
	val, err := c.rdb.Get(ctx, latexKey(imageHash)).Result()
	c.record(latexNamespace, err)
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("get latex: %w", err)
	}
	return val, nil
}

// PutLatex caches a transcription.
func (c *Cache) PutLatex(ctx context.Context, imageHash, latex string) error {
	if err := c.rdb.Set(ctx, latexKey(imageHash), latex, c.latexTTL).Err(); err != nil {
		return fmt.Errorf("set latex: %w", err)
	}
	return nil
}

// Event returns the cached extraction for text.
func (c *Cache) Event(ctx context.Context, text string) (domain.EventDetails, error) {
	raw, err := c.rdb.Get(ctx, eventKey(text)).Bytes()
	c.record(eventNamespace, err)
	if errors.Is(err, redis.Nil) {
		return domain.EventDetails{}, ErrMiss
	}
	if err != nil {
		return domain.EventDetails{}, fmt.Errorf("get event: %w", err)
	}

	var ev domain.EventDetails
	if err = json.Unmarshal(raw, &ev); err != nil {
		c.logger.Warn("Dropping undecodable cached event", logger.Error(err))
		_ = c.rdb.Del(ctx, eventKey(text)).Err()
		return domain.EventDetails{}, ErrMiss
	}
	return ev, nil
}

// PutEvent caches an extraction.
func (c *Cache) PutEvent(ctx context.Context, text string, ev domain.EventDetails) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err = c.rdb.Set(ctx, eventKey(text), raw, c.eventTTL).Err(); err != nil {
		return fmt.Errorf("set event: %w", err)
	}
	return nil
}

func (c *Cache) record(namespace string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		return
	}
	c.telemetry.RecordCacheLookup(namespace, err == nil)
}
