package relevance

import (
	"strings"

	"github.com/bazario/shopsearch/internal/domain/product"
)

// Scorer computes a field-weighted term-overlap score. Matches are
// case-insensitive substring checks; a term matching several fields
// contributes once per field (additive).
type Scorer struct {
	NameWeight        float64
	DescriptionWeight float64
	BrandWeight       float64
}

// DefaultScorer trusts name matches most, then description, then brand.
func DefaultScorer() Scorer {
	return Scorer{NameWeight: 5.0, DescriptionWeight: 2.0, BrandWeight: 1.0}
}

// Score returns 0 when terms is empty (no signal). Pure function.
func (s Scorer) Score(p *product.Product, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	brand := strings.ToLower(p.Brand)

	var score float64
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += s.NameWeight
		}
		if strings.Contains(desc, term) {
			score += s.DescriptionWeight
		}
		if strings.Contains(brand, term) {
			score += s.BrandWeight
		}
	}
	return score
}
