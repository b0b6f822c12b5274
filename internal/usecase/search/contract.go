package search

import (
	"context"

	"github.com/bazario/shopsearch/internal/domain"
	"github.com/bazario/shopsearch/internal/domain/product"
)

// Catalog is the read-only product store contract. Every method returns
// eligible products only (approved, active, in stock).
type Catalog interface {
	// FullTextSearch ranks products against the precomputed text index,
	// ordered by rank descending.
	FullTextSearch(ctx context.Context, query string, limit int) ([]product.Product, error)

	// SubstringSearch matches term case-insensitively against
	// name/description/brand, ordered by rating descending.
	SubstringSearch(ctx context.Context, term string, limit int) ([]product.Product, error)

	// VectorSearch runs the nearest-neighbor similarity function with the
	// given query vector; rows arrive ordered by similarity descending.
	VectorSearch(ctx context.Context, vector []float32, threshold float64, limit int) ([]product.Product, error)

	// Trending returns products ordered by rating, then review count.
	Trending(ctx context.Context, limit int) ([]product.Product, error)
}

// Embedder vectorizes query text. A nil Embedder on the service means no
// provider credential is configured and semantic search is disabled.
type Embedder = domain.Embedder

// Recorder logs a search event, best-effort. Failures are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, query string, resultCount int) error
}
