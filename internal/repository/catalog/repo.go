// Package catalog is the pgx-backed read-only product store. Every query
// filters to eligible products: approved, active, and in stock.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/bazario/shopsearch/internal/domain/product"
)

// Repo implements the catalog contracts of the search and enrich usecases.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// productColumns is the shared projection for full product rows. Nullable
// display fields collapse to zero values at the scan boundary so the rest
// of the pipeline never handles missing keys.
const productColumns = `p.id::text, p.name, COALESCE(p.description, ''), COALESCE(p.brand, ''),
	p.images, p.price::float8, p.sale_price::float8, p.discount_percentage::float8,
	COALESCE(p.rating, 0)::float8, p.reviews, p.in_stock, p.stock_quantity,
	p.category_id::text, p.subcategory_id::text, p.vendor_id::text,
	p.approval_status, p.status, v.business_name`

const eligibleClause = `p.in_stock = true
	AND p.approval_status = 'approved'
	AND p.status = 'active'`

// FullTextSearch ranks eligible products against the precomputed
// search_vector index, descending by rank. Ties fall to index order; the
// hybrid layer re-scores afterward.
func (r *Repo) FullTextSearch(ctx context.Context, query string, limit int) ([]product.Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN vendors v ON v.id = p.vendor_id
		WHERE ` + eligibleClause + `
		  AND p.search_vector @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(p.search_vector, plainto_tsquery('english', $1)) DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// SubstringSearch matches term case-insensitively against
// name/description/brand among eligible products, ordered by rating.
func (r *Repo) SubstringSearch(ctx context.Context, term string, limit int) ([]product.Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN vendors v ON v.id = p.vendor_id
		WHERE ` + eligibleClause + `
		  AND (p.name ILIKE $1 OR p.description ILIKE $1 OR p.brand ILIKE $1)
		ORDER BY p.rating DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("substring search: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// VectorSearch invokes the match_products similarity function. The function
// owns the ordering (similarity descending) and does not echo every catalog
// column; lifecycle fields default to approved/active on the way out.
func (r *Repo) VectorSearch(ctx context.Context, vector []float32, threshold float64, limit int) ([]product.Product, error) {
	sql := `SELECT m.id::text, m.name, COALESCE(m.description, ''), COALESCE(m.brand, ''),
			m.images, m.price::float8, COALESCE(m.rating, 0)::float8, m.reviews, m.in_stock
		FROM match_products($1, $2, $3) m`

	rows, err := r.pool.Query(ctx, sql, pgvector.NewVector(vector), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var (
			id string
			p  product.Product
		)
		if err := rows.Scan(&id, &p.Name, &p.Description, &p.Brand, &p.Images,
			&p.Price, &p.Rating, &p.ReviewCount, &p.InStock); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse product id: %w", err)
		}
		p.ApprovalStatus = product.ApprovalApproved
		p.Status = product.StatusActive
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector search rows: %w", err)
	}
	return products, nil
}

// Trending returns eligible products by rating, then review count.
func (r *Repo) Trending(ctx context.Context, limit int) ([]product.Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN vendors v ON v.id = p.vendor_id
		WHERE ` + eligibleClause + `
		ORDER BY p.rating DESC, p.reviews DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("trending query: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// HighlightsByProduct batch-fetches highlight rows for a set of products,
// ordered by sort index.
func (r *Repo) HighlightsByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]product.Highlight, error) {
	sql := `SELECT h.product_id::text, h.label, COALESCE(h.icon_url, '')
		FROM product_highlights h
		WHERE h.product_id = ANY($1::uuid[])
		ORDER BY h.sort_order`

	rows, err := r.pool.Query(ctx, sql, uuidStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("highlight batch fetch: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]product.Highlight)
	for rows.Next() {
		var (
			pid string
			h   product.Highlight
		)
		if err := rows.Scan(&pid, &h.Label, &h.IconURL); err != nil {
			return nil, fmt.Errorf("scan highlight row: %w", err)
		}
		id, err := uuid.Parse(pid)
		if err != nil {
			return nil, fmt.Errorf("parse highlight product id: %w", err)
		}
		out[id] = append(out[id], h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("highlight rows: %w", err)
	}
	return out, nil
}

// SpecificationsByProduct batch-fetches specification rows for a set of
// products, ordered by sort index.
func (r *Repo) SpecificationsByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]product.Specification, error) {
	sql := `SELECT s.product_id::text, COALESCE(s.group_name, ''), s.spec_name, s.spec_value
		FROM product_specifications s
		WHERE s.product_id = ANY($1::uuid[])
		ORDER BY s.sort_order`

	rows, err := r.pool.Query(ctx, sql, uuidStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("specification batch fetch: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]product.Specification)
	for rows.Next() {
		var (
			pid  string
			spec product.Specification
		)
		if err := rows.Scan(&pid, &spec.GroupName, &spec.Name, &spec.Value); err != nil {
			return nil, fmt.Errorf("scan specification row: %w", err)
		}
		id, err := uuid.Parse(pid)
		if err != nil {
			return nil, fmt.Errorf("parse specification product id: %w", err)
		}
		out[id] = append(out[id], spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("specification rows: %w", err)
	}
	return out, nil
}

// collectProducts scans full product rows from the shared projection.
func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product rows: %w", err)
	}
	return products, nil
}

func scanProduct(rows pgx.Rows) (product.Product, error) {
	var (
		p             product.Product
		id            string
		categoryID    *string
		subcategoryID *string
		vendorID      *string
		vendorName    *string
	)

	err := rows.Scan(&id, &p.Name, &p.Description, &p.Brand, &p.Images,
		&p.Price, &p.SalePrice, &p.DiscountPercentage,
		&p.Rating, &p.ReviewCount, &p.InStock, &p.StockQuantity,
		&categoryID, &subcategoryID, &vendorID,
		&p.ApprovalStatus, &p.Status, &vendorName)
	if err != nil {
		return product.Product{}, fmt.Errorf("scan product row: %w", err)
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return product.Product{}, fmt.Errorf("parse product id: %w", err)
	}
	if p.CategoryID, err = parseUUIDPtr(categoryID); err != nil {
		return product.Product{}, fmt.Errorf("parse category id: %w", err)
	}
	if p.SubcategoryID, err = parseUUIDPtr(subcategoryID); err != nil {
		return product.Product{}, fmt.Errorf("parse subcategory id: %w", err)
	}
	if p.VendorID, err = parseUUIDPtr(vendorID); err != nil {
		return product.Product{}, fmt.Errorf("parse vendor id: %w", err)
	}
	if vendorName != nil {
		p.VendorName = *vendorName
	}

	return p, nil
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
