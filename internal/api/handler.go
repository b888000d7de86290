// Package api exposes the clipboard classification service over HTTP.
package api

import (
	"context"

	"github.com/ZinnunMalikov/clipsmart-main/internal/calendar"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/processor"
	"github.com/ZinnunMalikov/clipsmart-main/internal/storage"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

const defaultMaxBatch = 100

// Classifier classifies single samples.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.ClassificationResult
	ClassifyValue(ctx context.Context, v any) domain.ClassificationResult
}

// BatchClassifier classifies samples in bulk, preserving order.
type BatchClassifier interface {
	Process(ctx context.Context, texts []string) ([]processor.BatchResult, error)
}

// Assistant performs the model-backed conversions.
type Assistant interface {
	TranscribeLatex(ctx context.Context, png []byte) (string, error)
	ExtractEvent(ctx context.Context, text string) (domain.EventDetails, error)
}

// ResultCache memoizes assistant answers.
type ResultCache interface {
	Latex(ctx context.Context, imageHash string) (string, error)
	PutLatex(ctx context.Context, imageHash, latex string) error
	Event(ctx context.Context, text string) (domain.EventDetails, error)
	PutEvent(ctx context.Context, text string, ev domain.EventDetails) error
}

// ObjectStore persists outputs for download.
type ObjectStore interface {
	UploadJSON(ctx context.Context, result any, metadata map[string]any) (domain.StoredObject, error)
	UploadLatex(ctx context.Context, latex string) (domain.StoredObject, error)
	UploadCalendar(ctx context.Context, ics string) (domain.StoredObject, error)
}

// Deps are the handler's collaborators. Assistant, Cache and Store are
// optional and must be left nil, not typed-nil, when absent.
type Deps struct {
	Classifier Classifier
	Batch      BatchClassifier
	Assistant  Assistant
	Cache      ResultCache
	Store      ObjectStore
	RequestLog storage.RequestLog
	Calendar   calendar.Builder
	MaxBatch   int
	Logger     logger.Logger
	Telemetry  *telemetry.Provider
}

// Handler serves every route.
type Handler struct {
	classifier Classifier
	batch      BatchClassifier
	assistant  Assistant
	cache      ResultCache
	store      ObjectStore
	requestLog storage.RequestLog
	calendar   calendar.Builder
	maxBatch   int
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// NewHandler creates a Handler.
func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	if d.RequestLog == nil {
		d.RequestLog = storage.NopRequestLog{}
	}
	if d.MaxBatch <= 0 {
		d.MaxBatch = defaultMaxBatch
	}

	return &Handler{
		classifier: d.Classifier,
		batch:      d.Batch,
		assistant:  d.Assistant,
		cache:      d.Cache,
		store:      d.Store,
		requestLog: d.RequestLog,
		calendar:   d.Calendar,
		maxBatch:   d.MaxBatch,
		logger:     d.Logger,
		telemetry:  d.Telemetry,
	}
}
