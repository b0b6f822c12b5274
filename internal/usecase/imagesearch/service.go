// Package imagesearch matches free-text product descriptions, as produced
// by an upstream vision model, against the catalog. Descriptions are
// noisier than typed queries, so the semantic threshold is looser and the
// re-rank uses category/color/material bonus rules instead of the generic
// term scorer.
package imagesearch

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/bazario/shopsearch/internal/domain/product"
	"github.com/bazario/shopsearch/internal/domain/relevance"
	"github.com/bazario/shopsearch/internal/usecase/search"
)

// fallbackSentinel is what the vision step returns when it could not
// describe the image. It triggers a generic catalog sample, not an error.
const fallbackSentinel = "product search"

const defaultImageThreshold = 0.2

const defaultLimit = 10

// Service matches image descriptions to products.
type Service struct {
	search    Searcher
	bonuses   relevance.BonusTable
	threshold float64
	logger    *zap.Logger
}

// New creates an image-description matcher with the default bonus table.
func New(searcher Searcher, logger *zap.Logger) *Service {
	return &Service{
		search:    searcher,
		bonuses:   relevance.DefaultBonusTable(),
		threshold: defaultImageThreshold,
		logger:    logger,
	}
}

// WithBonusTable replaces the re-rank bonus table.
func (s *Service) WithBonusTable(table relevance.BonusTable) *Service {
	s.bonuses = table
	return s
}

// WithThreshold overrides the semantic similarity threshold.
func (s *Service) WithThreshold(threshold float64) *Service {
	if threshold > 0 {
		s.threshold = threshold
	}
	return s
}

// Match returns products matching the description, bonus-ranked. Total
// function: empty or sentinel descriptions yield a generic sample, and
// every failure path degrades to keyword search.
func (s *Service) Match(ctx context.Context, description string, limit int) ([]product.Product, search.Outcome) {
	if limit <= 0 {
		limit = defaultLimit
	}

	trimmed := strings.ToLower(strings.TrimSpace(description))
	if trimmed == "" || trimmed == fallbackSentinel {
		// Upstream vision step failed; serve a generic catalog sample.
		return s.search.Keyword(ctx, "product", limit)
	}

	candidates, out := s.search.Semantic(ctx, description, s.threshold, limit)
	if len(candidates) > 0 {
		return s.rerank(candidates, description, limit), out
	}

	candidates, out = s.search.Keyword(ctx, description, limit)
	if len(candidates) > 0 {
		return s.rerank(candidates, description, limit), out
	}

	return nil, out
}

// rerank orders candidates by bonus score descending. Candidates scoring
// zero are dropped when at least one candidate scored — but when every
// candidate scores zero, the incoming order is kept whole: a re-rank step
// must never erase otherwise-valid candidates.
func (s *Service) rerank(candidates []product.Product, description string, limit int) []product.Product {
	type scored struct {
		product product.Product
		score   float64
	}

	all := make([]scored, 0, len(candidates))
	anyPositive := false
	for _, p := range candidates {
		sc := s.bonuses.Score(&p, description)
		if sc > 0 {
			anyPositive = true
		}
		all = append(all, scored{product: p, score: sc})
	}

	if !anyPositive {
		if len(candidates) > limit {
			return candidates[:limit]
		}
		return candidates
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	ranked := make([]product.Product, 0, len(all))
	for _, c := range all {
		if c.score <= 0 {
			continue
		}
		ranked = append(ranked, c.product)
		if len(ranked) == limit {
			break
		}
	}
	return ranked
}
