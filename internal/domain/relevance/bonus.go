package relevance

import (
	"strings"

	"github.com/bazario/shopsearch/internal/domain/product"
)

// BonusRule awards a category bonus when the image description mentions any
// of DescriptionAny and the product name contains any of NameAny.
type BonusRule struct {
	DescriptionAny []string
	NameAny        []string
	Bonus          float64
}

// BonusTable re-ranks candidates matched against a free-text image
// description. Rules are evaluated in order and the first matching rule
// wins; color and material bonuses stack on top, one addition per term.
type BonusTable struct {
	Rules         []BonusRule
	Colors        []string
	ColorBonus    float64
	Materials     []string
	MaterialBonus float64
}

// DefaultBonusTable covers the catalog's dominant image-search categories.
func DefaultBonusTable() BonusTable {
	return BonusTable{
		Rules: []BonusRule{
			{
				DescriptionAny: []string{"shoes", "sneakers", "running shoes", "athletic", "footwear"},
				NameAny:        []string{"shoe", "sneaker", "running"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"smartwatch", "smart watch", "watch", "wearable"},
				NameAny:        []string{"smart", "watch"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"shirt", "t-shirt", "top", "clothing"},
				NameAny:        []string{"shirt", "t-shirt"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"yoga", "pants", "leggings", "workout"},
				NameAny:        []string{"yoga", "pants"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"sunglasses", "glasses", "eyewear"},
				NameAny:        []string{"sunglasses", "glasses"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"wallet", "leather"},
				NameAny:        []string{"wallet", "leather"},
				Bonus:          100,
			},
			{
				DescriptionAny: []string{"earbuds", "headphones", "wireless", "bluetooth"},
				NameAny:        []string{"earbuds", "headphones", "wireless"},
				Bonus:          100,
			},
		},
		Colors: []string{
			"black", "white", "gray", "grey", "pink", "blue", "red",
			"green", "silver", "gold",
		},
		ColorBonus: 10,
		Materials: []string{
			"leather", "fabric", "cotton", "silk", "wool", "denim",
			"metal", "steel", "silicone", "rubber",
		},
		MaterialBonus: 15,
	}
}

// Score computes the image-match bonus for one product against the
// description. At most one category rule fires; color and material bonuses
// are unbounded and require the term in both the description and the
// product's name or description.
func (t BonusTable) Score(p *product.Product, description string) float64 {
	desc := strings.ToLower(description)
	name := strings.ToLower(p.Name)
	pdesc := strings.ToLower(p.Description)

	var score float64

	for _, rule := range t.Rules {
		if containsAny(desc, rule.DescriptionAny) && containsAny(name, rule.NameAny) {
			score += rule.Bonus
			break
		}
	}

	for _, color := range t.Colors {
		if strings.Contains(desc, color) && (strings.Contains(name, color) || strings.Contains(pdesc, color)) {
			score += t.ColorBonus
		}
	}

	for _, mat := range t.Materials {
		if strings.Contains(desc, mat) && (strings.Contains(name, mat) || strings.Contains(pdesc, mat)) {
			score += t.MaterialBonus
		}
	}

	return score
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
