package processor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/processor"
)

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	t.Parallel()

	svc := classifier.NewService(nil, nil)
	bp := processor.NewBatchProcessor(svc, 4, nil, nil)

	texts := []string{
		"https://example.com",
		"Meeting on 2024-03-15",
		"hello world",
		"123 Main Street, Springfield, IL 62704",
	}
	for i := range 40 {
		texts = append(texts, fmt.Sprintf("sample %d", i))
	}

	results, err := bp.Process(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, classifier.Classify(texts[i]), r.Result, "text %q", texts[i])
	}
	assert.True(t, results[0].Result.Link)
	assert.True(t, results[1].Result.Date)
	assert.Empty(t, results[2].Categories)
	assert.Contains(t, results[3].Categories, domain.CategoryAddress)
}

func TestBatchProcessor_Empty(t *testing.T) {
	t.Parallel()

	bp := processor.NewBatchProcessor(classifier.NewService(nil, nil), 0, nil, nil)
	results, err := bp.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bp := processor.NewBatchProcessor(classifier.NewService(nil, nil), 2, nil, nil)
	results, err := bp.Process(ctx, []string{"a", "b", "c"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
