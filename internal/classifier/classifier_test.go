package classifier_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

func TestClassify_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, r domain.ClassificationResult)
	}{
		{
			name:  "url",
			input: "https://example.com/path",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.True(t, r.Link)
				assert.False(t, r.Date)
				assert.False(t, r.Address)
				// Math is expected: "/" is in the symbol table. WantsLatex (Math && !Link)
				// is the gate that keeps URLs away from formula transcription.
				assert.True(t, r.Math)
				assert.False(t, r.WantsLatex())
			},
		},
		{
			name:  "iso date",
			input: "2024-01-15",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.True(t, r.Date)
				assert.False(t, r.Link)
			},
		},
		{
			name:  "equation",
			input: "x^2 + y^2 = r^2",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.True(t, r.Math)
				assert.True(t, r.WantsLatex())
			},
		},
		{
			name:  "street address",
			input: "349 Ferst Dr NW, Atlanta, GA 30332",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.True(t, r.Address)
			},
		},
		{
			name:  "plain prose",
			input: "hello world",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.Equal(t, domain.ClassificationResult{}, r)
			},
		},
		{
			name:  "single letter",
			input: "x",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.Equal(t, domain.ClassificationResult{Math: true}, r)
			},
		},
		{
			name:  "link and address together",
			input: "www.example.com 5 Main St",
			check: func(t *testing.T, r domain.ClassificationResult) {
				t.Helper()
				assert.True(t, r.Link)
				assert.True(t, r.Address)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, classifier.Classify(tt.input))
		})
	}
}

func TestClassify_EmptyAndBlank(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", " ", "\t\n  \r"} {
		assert.Equal(t, domain.ClassificationResult{}, classifier.Classify(in), "input %q", in)
	}
}

func TestClassify_IgnoresSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com/path",
		"2024-01-15",
		"x",
		"349 Ferst Dr NW, Atlanta, GA 30332",
		"hello world",
	}
	for _, in := range inputs {
		padded := "  \n\t" + in + "\t  \n"
		assert.Equal(t, classifier.Classify(in), classifier.Classify(padded), "input %q", in)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	in := "Meet at 5 Main St tomorrow at 3pm, bring f(x) notes from www.example.com"
	first := classifier.Classify(in)
	for range 50 {
		assert.Equal(t, first, classifier.Classify(in))
	}
}

// TestClassify_ConcurrentUse hammers the shared literal tables from many
// goroutines. Run with -race; a non-thread-safe matcher shows up either as a
// race report or as a missed hit.
func TestClassify_ConcurrentUse(t *testing.T) {
	t.Parallel()

	const (
		workers    = 32
		iterations = 2000
	)
	if testing.Short() {
		t.Skip("sustained concurrency test")
	}

	// Each input reaches at least one literal table.
	inputs := []string{
		"see you tomorrow",          // relative dates
		"single",                    // math functions
		"apt",                       // address units
		"go to www.x",               // link indicators
		"vector",                    // math keywords
		"a + b",                     // math symbols
		"firstnorth",                // street types without boundaries + directionals
		"somewhere over in the usa", // countries
		"https://example.com",       // link indicators
		"hello world",               // no hits
	}
	want := make([]domain.ClassificationResult, len(inputs))
	for i, in := range inputs {
		want[i] = classifier.Classify(in)
	}
	assert.True(t, want[0].Date)
	assert.True(t, want[1].Math)
	assert.True(t, want[2].Address)
	assert.True(t, want[3].Link)
	assert.True(t, want[4].Math)
	assert.True(t, want[5].Math)
	assert.True(t, want[6].Address)
	assert.True(t, want[7].Address)
	assert.Equal(t, domain.ClassificationResult{}, want[9])

	var (
		wg     sync.WaitGroup
		misses atomic.Int64
	)
	for w := range workers {
		wg.Go(func() {
			for n := range iterations {
				i := (w + n) % len(inputs)
				if classifier.Classify(inputs[i]) != want[i] {
					misses.Add(1)
				}
			}
		})
	}
	wg.Wait()

	assert.Zero(t, misses.Load(), "results changed under concurrent use")
}

func TestClassify_ArbitraryUnicodeDoesNotPanic(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"日本語のテキスト",
		"🙂🙃 emoji only 🎉",
		"∑∫√∞≠≈πθ",
		"\x00\xff\xfe broken utf8",
		"İstanbul Straße",
		string(make([]byte, 4096)),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { classifier.Classify(in) }, "input %q", in)
	}
}

func TestClassifyValue_MalformedInput(t *testing.T) {
	t.Parallel()

	var nilStr *string
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"int", 42},
		{"float", 3.14},
		{"bool", true},
		{"slice", []string{"https://example.com"}},
		{"map", map[string]any{"text": "x"}},
		{"nil string pointer", nilStr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, domain.ClassificationResult{}, classifier.ClassifyValue(tt.in))
		})
	}
}

func TestClassifyValue_Strings(t *testing.T) {
	t.Parallel()

	s := "x"
	assert.Equal(t, classifier.Classify("x"), classifier.ClassifyValue("x"))
	assert.Equal(t, classifier.Classify("x"), classifier.ClassifyValue(&s))
}

func TestDetectorFor(t *testing.T) {
	t.Parallel()

	for _, c := range domain.AllCategories {
		assert.NotNil(t, classifier.DetectorFor(c), string(c))
	}
	assert.Nil(t, classifier.DetectorFor("phone"))
	assert.True(t, classifier.DetectorFor(domain.CategoryLink)("www.example.com"))
}

func TestService_MatchesPureClassify(t *testing.T) {
	t.Parallel()

	svc := classifier.NewService(logger.NewNop(), nil)
	ctx := context.Background()

	for _, in := range []string{"x", "hello world", "Jan 5, 2024", "P.O. Box 12"} {
		assert.Equal(t, classifier.Classify(in), svc.Classify(ctx, in), "input %q", in)
	}
	assert.Equal(t, domain.ClassificationResult{}, svc.ClassifyValue(ctx, nil))
}

func BenchmarkClassify(b *testing.B) {
	samples := []string{
		"https://example.com/path?q=1",
		"Lunch with Sam on March 5th, 2024 at 12:30pm",
		"\\int_0^1 x^2 dx = 1/3",
		"349 Ferst Dr NW, Atlanta, GA 30332",
		"just some ordinary clipboard prose without anything special in it",
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		classifier.Classify(samples[i%len(samples)])
	}
}
