// Package enrich attaches secondary display data (highlights,
// specifications) to a result set in two batch queries, not one pair per
// product.
package enrich

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazario/shopsearch/internal/domain/product"
)

// Service batch-attaches highlights and specifications to products.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
}

// New creates an enrichment service.
func New(catalog Catalog, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// Enrich augments each product with its ordered highlight and specification
// sub-lists. A failed batch fetch is logged and the products come back with
// empty sub-lists; enrichment never fails the caller.
func (s *Service) Enrich(ctx context.Context, products []product.Product) []product.Product {
	if len(products) == 0 {
		return products
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	highlights, err := s.catalog.HighlightsByProduct(ctx, ids)
	if err != nil {
		s.logger.Warn("highlight batch fetch failed", zap.Error(err))
		highlights = nil
	}

	specs, err := s.catalog.SpecificationsByProduct(ctx, ids)
	if err != nil {
		s.logger.Warn("specification batch fetch failed", zap.Error(err))
		specs = nil
	}

	for i := range products {
		products[i].Highlights = highlights[products[i].ID]
		products[i].Specifications = specs[products[i].ID]
	}

	return products
}
