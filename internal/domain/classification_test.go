package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

func TestClassificationResult_SetHas(t *testing.T) {
	t.Parallel()

	var r domain.ClassificationResult
	for _, c := range domain.AllCategories {
		assert.False(t, r.Has(c), string(c))
		r.Set(c, true)
		assert.True(t, r.Has(c), string(c))
	}

	r.Set("unknown", true)
	assert.False(t, r.Has("unknown"))
}

func TestClassificationResult_Categories(t *testing.T) {
	t.Parallel()

	r := domain.ClassificationResult{Math: true, Link: true}
	assert.Equal(t, []domain.Category{domain.CategoryLink, domain.CategoryMath}, r.Categories())
	assert.Empty(t, domain.ClassificationResult{}.Categories())
}

func TestClassificationResult_Map(t *testing.T) {
	t.Parallel()

	m := domain.ClassificationResult{Date: true}.Map()
	assert.Equal(t, map[string]bool{"link": false, "date": true, "math": false, "address": false}, m)
}

func TestClassificationResult_WantsLatex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   domain.ClassificationResult
		want bool
	}{
		{"math only", domain.ClassificationResult{Math: true}, true},
		{"math and link", domain.ClassificationResult{Math: true, Link: true}, false},
		{"none", domain.ClassificationResult{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.WantsLatex())
		})
	}
}
