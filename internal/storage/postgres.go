package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

// PostgresRequestLog stores entries in the processing_logs table.
type PostgresRequestLog struct {
	db *sqlx.DB
}

// NewPostgresRequestLog wraps an open connection.
func NewPostgresRequestLog(db *sqlx.DB) *PostgresRequestLog {
	return &PostgresRequestLog{db: db}
}

type requestLogRow struct {
	domain.RequestLogEntry
	ClassificationJSON []byte `db:"classification"`
}

// Log inserts entry and sets its ID.
func (r *PostgresRequestLog) Log(ctx context.Context, entry *domain.RequestLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	classification := entry.Classification
	if classification == nil {
		classification = map[string]bool{}
	}
	payload, err := json.Marshal(classification)
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}

	query := `
		INSERT INTO processing_logs (
			timestamp, endpoint, content_preview, content_length, classification,
			processing_success, has_s3_storage, has_latex_conversion
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = r.db.QueryRowContext(ctx, query,
		entry.Timestamp,
		entry.Endpoint,
		entry.ContentPreview,
		entry.ContentLength,
		payload,
		entry.ProcessingSuccess,
		entry.HasObjectStorage,
		entry.HasLatexConversion,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (r *PostgresRequestLog) Recent(ctx context.Context, limit int) ([]domain.RequestLogEntry, error) {
	query := `
		SELECT id, timestamp, endpoint, content_preview, content_length, classification,
		       processing_success, has_s3_storage, has_latex_conversion
		FROM processing_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`

	var rows []requestLogRow
	if err := r.db.SelectContext(ctx, &rows, query, ClampLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}

	entries := make([]domain.RequestLogEntry, 0, len(rows))
	for _, row := range rows {
		entry := row.RequestLogEntry
		if len(row.ClassificationJSON) > 0 {
			if err := json.Unmarshal(row.ClassificationJSON, &entry.Classification); err != nil {
				return nil, fmt.Errorf("failed to decode classification for log %d: %w", entry.ID, err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Ping checks the connection.
func (r *PostgresRequestLog) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Backend names the store.
func (r *PostgresRequestLog) Backend() string { return "postgres" }
