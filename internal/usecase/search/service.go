// Package search implements the multi-strategy product retrieval and
// ranking pipeline: lexical full-text search with a substring fallback,
// synonym-expanded keyword search, embedding-based semantic search, and the
// hybrid ranker that merges them into one ordered list.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazario/shopsearch/internal/domain/product"
	"github.com/bazario/shopsearch/internal/domain/relevance"
)

const (
	// maxKeywordTokens bounds per-token query fan-out and doubles as the
	// concurrency ceiling for the keyword path.
	maxKeywordTokens = 8

	// Hybrid merge scoring. Lexical hits carry a flat high base decaying
	// slowly by rank; semantic hits start lower, decay by full rank steps,
	// and must corroborate with a nonzero term-level relevance.
	lexicalBaseScore  = 20.0
	lexicalRankDecay  = 0.5
	semanticBaseScore = 10.0

	defaultHybridThreshold = 0.3

	defaultSearchLimit   = 20
	defaultFallbackLimit = 10
)

// Service orchestrates the retrieval strategies over a read-only catalog
// store and an optional embedding provider. Every public method is total:
// it returns a (possibly empty) product list and an Outcome, never an error.
type Service struct {
	catalog   Catalog
	embed     Embedder // nil when no provider credential is configured
	analytics Recorder // optional, fire-and-forget
	synonyms  relevance.Synonyms
	stop      relevance.StopWords
	scorer    relevance.Scorer
	threshold float64
	logger    *zap.Logger
}

// New creates a search service with the default relevance tables.
// embed may be nil; semantic search then degrades to keyword search.
func New(catalog Catalog, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		catalog:   catalog,
		embed:     embed,
		synonyms:  relevance.DefaultSynonyms(),
		stop:      relevance.DefaultStopWords(),
		scorer:    relevance.DefaultScorer(),
		threshold: defaultHybridThreshold,
		logger:    logger,
	}
}

// WithTables replaces the relevance tables. Tables are immutable inputs;
// tests substitute alternates here instead of patching package state.
func (s *Service) WithTables(syn relevance.Synonyms, stop relevance.StopWords, scorer relevance.Scorer) *Service {
	s.synonyms = syn
	s.stop = stop
	s.scorer = scorer
	return s
}

// WithAnalytics attaches a best-effort search event recorder.
func (s *Service) WithAnalytics(rec Recorder) *Service {
	s.analytics = rec
	return s
}

// WithHybridThreshold overrides the similarity threshold the hybrid ranker
// passes to semantic search.
func (s *Service) WithHybridThreshold(threshold float64) *Service {
	if threshold > 0 {
		s.threshold = threshold
	}
	return s
}

// Hybrid is the primary entry point for text queries. It runs semantic and
// lexical search concurrently, merges by product identity with lexical
// results winning ties, scores, and returns one ordered list.
func (s *Service) Hybrid(ctx context.Context, query string, limit int) (products []product.Product, out Outcome) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	// The ranker never propagates a failure to its caller; the worst case
	// is a plain lexical result set.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("hybrid search panicked, serving lexical results", zap.Any("panic", r))
			products, _ = s.Lexical(ctx, query, limit)
			out = Outcome{Strategy: StrategyHybrid, Degraded: true}
		}
	}()

	type sub struct {
		products []product.Product
		outcome  Outcome
	}
	semCh := make(chan sub, 1)
	lexCh := make(chan sub, 1)

	// No data dependency between the two; a failure in one must not cancel
	// the other — each degrades per its own fallback rules.
	go func() {
		p, o := s.Semantic(ctx, query, s.threshold, limit)
		semCh <- sub{p, o}
	}()
	go func() {
		p, o := s.Lexical(ctx, query, limit)
		lexCh <- sub{p, o}
	}()

	sem := <-semCh
	lex := <-lexCh

	terms := s.stop.Terms(query)

	type candidate struct {
		product product.Product
		score   float64
	}
	scored := make([]candidate, 0, len(lex.products)+len(sem.products))
	seen := make(map[uuid.UUID]struct{}, len(lex.products))

	// Lexical results are trusted more: exact or stemmed term matches.
	for i, p := range lex.products {
		score := lexicalBaseScore - lexicalRankDecay*float64(i) + s.scorer.Score(&p, terms)
		seen[p.ID] = struct{}{}
		scored = append(scored, candidate{product: p, score: score})
	}

	// Semantic hits widen the set but must corroborate with at least one
	// term-level match; vector similarity alone is too loose for a
	// commerce catalog ("black shoes" matching unrelated black items).
	for i, p := range sem.products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		rel := s.scorer.Score(&p, terms)
		if rel <= 0 {
			continue
		}
		scored = append(scored, candidate{product: p, score: semanticBaseScore - float64(i) + rel})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > limit {
		scored = scored[:limit]
	}

	products = make([]product.Product, len(scored))
	for i, c := range scored {
		products[i] = c.product
	}

	out = Outcome{
		Strategy: StrategyHybrid,
		Degraded: lex.outcome.Degraded || sem.outcome.Degraded,
	}

	s.record(ctx, query, len(products))
	return products, out
}

// Lexical ranks products by full-text relevance, falling back to a
// case-insensitive substring pass when the index yields nothing (partial
// words, SKU fragments).
func (s *Service) Lexical(ctx context.Context, query string, limit int) ([]product.Product, Outcome) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.catalog.FullTextSearch(ctx, query, limit)
	if err != nil {
		s.logger.Error("full-text search failed", zap.String("query", query), zap.Error(err))
		return nil, Outcome{Strategy: StrategyFullText, Degraded: true}
	}
	if len(rows) > 0 {
		return rows, Outcome{Strategy: StrategyFullText}
	}

	rows, err = s.catalog.SubstringSearch(ctx, query, limit)
	if err != nil {
		s.logger.Error("substring search failed", zap.String("query", query), zap.Error(err))
		return nil, Outcome{Strategy: StrategySubstring, Degraded: true}
	}
	return rows, Outcome{Strategy: StrategySubstring}
}

// Semantic embeds the query and runs the nearest-neighbor similarity
// function. Without a configured provider, or on any provider/store
// failure, the keyword path serves the query instead — semantic search is
// an optional enhancement, never a hard dependency.
func (s *Service) Semantic(ctx context.Context, query string, threshold float64, limit int) ([]product.Product, Outcome) {
	if limit <= 0 {
		limit = defaultFallbackLimit
	}

	if s.embed == nil {
		return s.Keyword(ctx, query, limit)
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, falling back to keyword search",
			zap.String("query", query), zap.Error(err))
		products, out := s.Keyword(ctx, query, limit)
		out.Degraded = true
		return products, out
	}

	rows, err := s.catalog.VectorSearch(ctx, emb.Embedding, threshold, limit)
	if err != nil {
		s.logger.Warn("vector search failed, falling back to keyword search",
			zap.String("query", query), zap.Error(err))
		products, out := s.Keyword(ctx, query, limit)
		out.Degraded = true
		return products, out
	}

	return rows, Outcome{Strategy: StrategySemantic}
}

// Keyword expands the query with synonyms, tokenizes it, and issues one
// substring search per significant token, concurrently, bounded by the
// token cap. Results are deduplicated by product identity (first seen wins)
// and ordered by rating.
func (s *Service) Keyword(ctx context.Context, query string, limit int) ([]product.Product, Outcome) {
	if limit <= 0 {
		limit = defaultFallbackLimit
	}

	tokens := keywordTokens(s.synonyms.Expand(query))
	if len(tokens) == 0 {
		// "No searchable terms" is not the same as "no results".
		return s.Trending(ctx, limit)
	}

	perToken := make([][]product.Product, len(tokens))
	errs := make([]error, len(tokens))

	var wg sync.WaitGroup
	for i, tok := range tokens {
		wg.Add(1)
		go func(i int, tok string) {
			defer wg.Done()
			perToken[i], errs[i] = s.catalog.SubstringSearch(ctx, tok, limit)
		}(i, tok)
	}
	wg.Wait()

	degraded := false
	seen := make(map[uuid.UUID]struct{})
	var merged []product.Product
	for i := range perToken {
		if errs[i] != nil {
			// Best-effort: keep what the other tokens found.
			s.logger.Error("keyword token search failed",
				zap.String("token", tokens[i]), zap.Error(errs[i]))
			degraded = true
			continue
		}
		for _, p := range perToken[i] {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Rating > merged[j].Rating })
	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, Outcome{Strategy: StrategyKeyword, Degraded: degraded}
}

// Trending is the terminal fallback: top-rated in-stock products, no query
// terms involved.
func (s *Service) Trending(ctx context.Context, limit int) ([]product.Product, Outcome) {
	if limit <= 0 {
		limit = defaultFallbackLimit
	}

	rows, err := s.catalog.Trending(ctx, limit)
	if err != nil {
		s.logger.Error("trending query failed", zap.Error(err))
		return nil, Outcome{Strategy: StrategyTrending, Degraded: true}
	}
	return rows, Outcome{Strategy: StrategyTrending}
}

// record writes a search analytics event without blocking the read path.
func (s *Service) record(ctx context.Context, query string, resultCount int) {
	if s.analytics == nil {
		return
	}
	go func(ctx context.Context) {
		if err := s.analytics.Record(ctx, query, resultCount); err != nil {
			s.logger.Warn("search analytics write failed", zap.Error(err))
		}
	}(context.WithoutCancel(ctx))
}

// keywordTokens lowercased the expanded query already (Expand lowercases);
// keep distinct tokens longer than two characters in first-seen order, up
// to the fan-out cap.
func keywordTokens(expanded string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, w := range strings.Fields(expanded) {
		if len(w) <= 2 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
		if len(tokens) == maxKeywordTokens {
			break
		}
	}
	return tokens
}
