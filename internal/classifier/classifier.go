// Package classifier decides which kinds of content a clipboard sample holds:
// links, dates, math and postal addresses.
//
// Each detector is a pure function over immutable, package-level tables, so
// every exported function here is safe for concurrent use. Verdicts are
// independent; a sample may belong to several categories or to none.
package classifier

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

// Detector reports whether a sample belongs to one category.
type Detector func(text string) bool

type detector struct {
	category domain.Category
	detect   Detector
}

// detectors run in this order. Nothing depends on the order.
var detectors = []detector{
	{domain.CategoryLink, IsLink},
	{domain.CategoryDate, IsDate},
	{domain.CategoryMath, IsMath},
	{domain.CategoryAddress, IsAddress},
}

// Classify runs every detector over text.
func Classify(text string) domain.ClassificationResult {
	var result domain.ClassificationResult
	for _, d := range detectors {
		result.Set(d.category, d.detect(text))
	}
	return result
}

// ClassifyValue classifies a loosely typed value such as a decoded JSON field.
// Anything that is not a string, including nil, yields an all-false result.
func ClassifyValue(v any) domain.ClassificationResult {
	switch t := v.(type) {
	case string:
		return Classify(t)
	case *string:
		if t != nil {
			return Classify(*t)
		}
	}
	return domain.ClassificationResult{}
}

// DetectorFor returns the detector for c, or nil for an unknown category.
func DetectorFor(c domain.Category) Detector {
	for _, d := range detectors {
		if d.category == c {
			return d.detect
		}
	}
	return nil
}

// Service wraps Classify with tracing, metrics and debug logging.
type Service struct {
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewService creates a Service. tp may be nil.
func NewService(log logger.Logger, tp *telemetry.Provider) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{logger: log, telemetry: tp}
}

// Classify classifies text and records the outcome.
func (s *Service) Classify(ctx context.Context, text string) domain.ClassificationResult {
	return s.ClassifyValue(ctx, text)
}

// ClassifyValue is Classify for loosely typed input.
func (s *Service) ClassifyValue(ctx context.Context, v any) domain.ClassificationResult {
	_, span := s.telemetry.StartSpan(ctx, "classifier.classify")
	defer span.End()

	start := time.Now()
	result := ClassifyValue(v)
	elapsed := time.Since(start)

	s.telemetry.RecordClassification(result.Map(), elapsed)

	span.SetAttributes(
		attribute.Bool("clip.link", result.Link),
		attribute.Bool("clip.date", result.Date),
		attribute.Bool("clip.math", result.Math),
		attribute.Bool("clip.address", result.Address),
	)

	if _, ok := v.(string); !ok {
		s.logger.Debug("Non-string input classified as empty")
	}
	s.logger.Debug("Sample classified",
		logger.Any("categories", result.Categories()),
		logger.Duration("duration", elapsed),
	)

	return result
}
