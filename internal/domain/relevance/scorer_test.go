package relevance

import (
	"testing"

	"github.com/bazario/shopsearch/internal/domain/product"
)

func TestScore_FieldWeights(t *testing.T) {
	scorer := DefaultScorer()

	p := &product.Product{
		Name:        "Nike Running Shoes",
		Description: "Lightweight running shoes for daily training",
		Brand:       "Nike",
	}

	tests := []struct {
		name  string
		terms []string
		want  float64
	}{
		{
			name:  "name only",
			terms: []string{"shoes"},
			want:  5.0 + 2.0, // also in description
		},
		{
			name:  "all three fields",
			terms: []string{"nike"},
			want:  5.0 + 1.0,
		},
		{
			name:  "description only",
			terms: []string{"training"},
			want:  2.0,
		},
		{
			name:  "no match",
			terms: []string{"watch"},
			want:  0,
		},
		{
			name:  "terms accumulate",
			terms: []string{"nike", "running"},
			want:  (5.0 + 1.0) + (5.0 + 2.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(p, tt.terms); got != tt.want {
				t.Errorf("Score(%v) = %g, want %g", tt.terms, got, tt.want)
			}
		})
	}
}

func TestScore_EmptyTermsIsZero(t *testing.T) {
	scorer := DefaultScorer()
	p := &product.Product{Name: "Anything"}

	if got := scorer.Score(p, nil); got != 0 {
		t.Errorf("Score with no terms = %g, want 0", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	scorer := DefaultScorer()
	p := &product.Product{Name: "LEATHER Wallet"}

	if got := scorer.Score(p, []string{"leather"}); got != 5.0 {
		t.Errorf("Score = %g, want 5", got)
	}
}
