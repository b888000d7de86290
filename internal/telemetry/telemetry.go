// Package telemetry exposes Prometheus metrics and an OpenTelemetry tracer for
// the ClipSmart service.
package telemetry

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "clipsmart"

// Metrics holds every collector the service registers.
type Metrics struct {
	// Classification
	Classifications        *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	BatchSize              prometheus.Histogram

	// HTTP endpoints
	Requests *prometheus.CounterVec

	// Assistant
	AssistantCalls    *prometheus.CounterVec
	AssistantDuration *prometheus.HistogramVec

	// Cache
	CacheLookups *prometheus.CounterVec

	// Object store and request log
	Uploads    *prometheus.CounterVec
	RequestLog *prometheus.CounterVec
}

// Provider bundles the tracer and metrics. A nil *Provider is valid and
// records nothing.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

var (
	sharedMetrics *Metrics
	metricsOnce   sync.Once
)

// NewProvider returns a provider backed by the default Prometheus registry.
// Collectors are registered once per process; later calls share them.
func NewProvider() *Provider {
	metricsOnce.Do(func() {
		sharedMetrics = initMetrics()
	})

	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: sharedMetrics,
	}
}

// Handler serves /metrics.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_classifications_total",
		Help: "Classified samples by category and verdict",
	}, []string{"category", "result"})

	m.ClassificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipsmart_classification_duration_seconds",
		Help:    "Time to run all detectors over one sample",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipsmart_batch_size",
		Help:    "Number of samples per batch classification request",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})

	m.Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_requests_total",
		Help: "Processed requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	m.AssistantCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_assistant_calls_total",
		Help: "Assistant calls by operation and outcome",
	}, []string{"operation", "outcome"})

	m.AssistantDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clipsmart_assistant_duration_seconds",
		Help:    "Assistant call latency",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
	}, []string{"operation"})

	m.CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_cache_lookups_total",
		Help: "Cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	m.Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_object_uploads_total",
		Help: "Object store uploads by content type and outcome",
	}, []string{"content_type", "outcome"})

	m.RequestLog = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipsmart_request_log_writes_total",
		Help: "Request log writes by backend and outcome",
	}, []string{"backend", "outcome"})

	return m
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// RecordClassification records one classified sample.
func (p *Provider) RecordClassification(verdicts map[string]bool, duration time.Duration) {
	if p == nil {
		return
	}
	for category, v := range verdicts {
		label := "negative"
		if v {
			label = "positive"
		}
		p.Metrics.Classifications.WithLabelValues(category, label).Inc()
	}
	p.Metrics.ClassificationDuration.Observe(duration.Seconds())
}

// RecordBatchSize records the size of a batch request.
func (p *Provider) RecordBatchSize(size int) {
	if p == nil {
		return
	}
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordRequest counts a processed request.
func (p *Provider) RecordRequest(endpoint string, ok bool) {
	if p == nil {
		return
	}
	p.Metrics.Requests.WithLabelValues(endpoint, outcome(ok)).Inc()
}

// RecordAssistantCall records one assistant round trip.
func (p *Provider) RecordAssistantCall(operation string, ok bool, duration time.Duration) {
	if p == nil {
		return
	}
	p.Metrics.AssistantCalls.WithLabelValues(operation, outcome(ok)).Inc()
	p.Metrics.AssistantDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func (p *Provider) RecordCacheLookup(namespace string, hit bool) {
	if p == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	p.Metrics.CacheLookups.WithLabelValues(namespace, result).Inc()
}

// RecordUpload records an object store upload.
func (p *Provider) RecordUpload(contentType string, ok bool) {
	if p == nil {
		return
	}
	p.Metrics.Uploads.WithLabelValues(contentType, outcome(ok)).Inc()
}

// RecordRequestLog records a request log write.
func (p *Provider) RecordRequestLog(backend string, ok bool) {
	if p == nil {
		return
	}
	p.Metrics.RequestLog.WithLabelValues(backend, outcome(ok)).Inc()
}

// StartSpan starts a span. The caller ends it.
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if p == nil || p.Tracer == nil {
		return noop.NewTracerProvider().Tracer(serviceName).Start(ctx, name)
	}
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
