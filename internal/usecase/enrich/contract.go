package enrich

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazario/shopsearch/internal/domain/product"
)

// Catalog is the display-data store contract. Both methods are batch
// fetches keyed by product identity, with rows pre-ordered by sort index.
type Catalog interface {
	HighlightsByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]product.Highlight, error)
	SpecificationsByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]product.Specification, error)
}
