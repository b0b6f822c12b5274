package imagesearch

import (
	"context"

	"github.com/bazario/shopsearch/internal/domain/product"
	"github.com/bazario/shopsearch/internal/usecase/search"
)

// Searcher is the retrieval surface the matcher consumes (ISP).
type Searcher interface {
	Semantic(ctx context.Context, query string, threshold float64, limit int) ([]product.Product, search.Outcome)
	Keyword(ctx context.Context, query string, limit int) ([]product.Product, search.Outcome)
}
