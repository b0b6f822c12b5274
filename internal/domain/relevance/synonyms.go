package relevance

import "strings"

// SynonymRule maps a query substring to the phrase appended when it matches.
type SynonymRule struct {
	Key       string
	Expansion string
}

// Synonyms is an ordered synonym table. Order matters: expansion output is
// deterministic, every matching rule contributes (expansions accumulate).
type Synonyms []SynonymRule

// DefaultSynonyms broadens the apparel/accessory vocabulary shoppers use.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		{"shirt", "shirts top tops blouse tee t-shirt"},
		{"pants", "pant trousers jeans bottoms"},
		{"shoes", "shoe sneakers boots sandals footwear"},
		{"sneakers", "sneaker shoes boots running"},
		{"watch", "watches smartwatch smartwatches timepiece"},
		{"bag", "bags handbag purse backpack"},
		{"dress", "dresses gown frock outfit"},
		{"jacket", "jackets coat blazer outerwear"},
		{"cheap", "affordable budget discounted"},
		{"expensive", "premium luxury high-end"},
	}
}

// Expand lowercases the query and appends the expansion of every rule whose
// key occurs as a substring. Not idempotent: re-expanding an already expanded
// query appends again, so callers expand exactly once per raw query.
func (s Synonyms) Expand(query string) string {
	expanded := strings.ToLower(query)
	for _, rule := range s {
		if strings.Contains(expanded, rule.Key) {
			expanded += " " + rule.Expansion
		}
	}
	return expanded
}
