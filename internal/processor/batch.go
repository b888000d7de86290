package processor

import (
	"context"
	"sync"
	"time"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

const defaultConcurrency = 8

// Classifier is the single-sample classification the batch fans out to.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.ClassificationResult
}

// BatchResult is the verdict for one input, at the input's position.
type BatchResult struct {
	Index      int                        `json:"index"`
	Result     domain.ClassificationResult `json:"result"`
	Categories []domain.Category          `json:"categories"`
}

// BatchProcessor classifies many samples with a fixed worker pool.
type BatchProcessor struct {
	classifier  Classifier
	concurrency int
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

// NewBatchProcessor creates a pool of concurrency workers.
func NewBatchProcessor(c Classifier, concurrency int, log logger.Logger, tp *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchProcessor{
		classifier:  c,
		concurrency: concurrency,
		logger:      log,
		telemetry:   tp,
	}
}

type job struct {
	index int
	text  string
}

// Process classifies texts and returns results in input order. On
// cancellation the unfinished positions are left out and ctx.Err() is returned.
func (b *BatchProcessor) Process(ctx context.Context, texts []string) ([]BatchResult, error) {
	if len(texts) == 0 {
		return []BatchResult{}, nil
	}

	b.telemetry.RecordBatchSize(len(texts))
	startTime := time.Now()

	workers := min(b.concurrency, len(texts))
	jobs := make(chan job, len(texts))
	results := make([]BatchResult, len(texts))
	done := make([]bool, len(texts))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go b.worker(ctx, jobs, results, done, &wg)
	}

	for i, text := range texts {
		jobs <- job{index: i, text: text}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		completed := make([]BatchResult, 0, len(texts))
		for i, ok := range done {
			if ok {
				completed = append(completed, results[i])
			}
		}
		b.logger.Warn("Batch classification interrupted",
			logger.Int("total", len(texts)),
			logger.Int("completed", len(completed)),
			logger.Error(err),
		)
		return completed, err
	}

	b.logger.Debug("Batch classification complete",
		logger.Int("total", len(texts)),
		logger.Int("workers", workers),
		logger.Duration("duration", time.Since(startTime)),
	)
	return results, nil
}

// worker writes only the slots of the jobs it receives, so no locking is needed.
func (b *BatchProcessor) worker(
	ctx context.Context,
	jobs <-chan job,
	results []BatchResult,
	done []bool,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := b.classifier.Classify(ctx, j.text)
		results[j.index] = BatchResult{
			Index:      j.index,
			Result:     res,
			Categories: res.Categories(),
		}
		done[j.index] = true
	}
}
