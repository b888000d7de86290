// Package storage persists the processed-request log.
package storage

import (
	"context"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 500
)

// RequestLog records processed requests and reads back the most recent ones.
type RequestLog interface {
	Log(ctx context.Context, entry *domain.RequestLogEntry) error
	Recent(ctx context.Context, limit int) ([]domain.RequestLogEntry, error)
	Ping(ctx context.Context) error
	Backend() string
}

// NopRequestLog discards every entry.
type NopRequestLog struct{}

func (NopRequestLog) Log(context.Context, *domain.RequestLogEntry) error { return nil }

func (NopRequestLog) Recent(context.Context, int) ([]domain.RequestLogEntry, error) {
	return []domain.RequestLogEntry{}, nil
}

func (NopRequestLog) Ping(context.Context) error { return nil }

func (NopRequestLog) Backend() string { return "none" }

// ClampLimit bounds a caller-supplied page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultRecentLimit
	case limit > maxRecentLimit:
		return maxRecentLimit
	default:
		return limit
	}
}
