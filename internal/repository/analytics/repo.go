// Package analytics persists search events to the search_analytics table.
package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazario/shopsearch/internal/usecase/analytics"
)

// Repo implements the analytics store over pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates an analytics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert writes one search event.
func (r *Repo) Insert(ctx context.Context, query string, resultCount int) error {
	sql := `INSERT INTO search_analytics (id, query, result_count, timestamp)
		VALUES ($1, $2, $3, now())`

	if _, err := r.pool.Exec(ctx, sql, uuid.NewString(), query, resultCount); err != nil {
		return fmt.Errorf("insert search event: %w", err)
	}
	return nil
}

// Total counts events inside the window.
func (r *Repo) Total(ctx context.Context, rng analytics.Range) (int64, error) {
	sql := `SELECT count(*) FROM search_analytics WHERE ` + rangeClause

	var total int64
	if err := r.pool.QueryRow(ctx, sql, rng.Start, rng.End).Scan(&total); err != nil {
		return 0, fmt.Errorf("count search events: %w", err)
	}
	return total, nil
}

// Popular returns the most frequent queries inside the window.
func (r *Repo) Popular(ctx context.Context, rng analytics.Range, limit int) ([]analytics.PopularQuery, error) {
	sql := `SELECT query, count(*) AS freq
		FROM search_analytics
		WHERE ` + rangeClause + `
		GROUP BY query
		ORDER BY freq DESC, query
		LIMIT $3`

	rows, err := r.pool.Query(ctx, sql, rng.Start, rng.End, limit)
	if err != nil {
		return nil, fmt.Errorf("popular queries: %w", err)
	}
	defer rows.Close()

	var out []analytics.PopularQuery
	for rows.Next() {
		var pq analytics.PopularQuery
		if err := rows.Scan(&pq.Query, &pq.Count); err != nil {
			return nil, fmt.Errorf("scan popular query: %w", err)
		}
		out = append(out, pq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("popular query rows: %w", err)
	}
	return out, nil
}

// Recent returns the newest events inside the window.
func (r *Repo) Recent(ctx context.Context, rng analytics.Range, limit int) ([]analytics.Event, error) {
	sql := `SELECT query, result_count, timestamp
		FROM search_analytics
		WHERE ` + rangeClause + `
		ORDER BY timestamp DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, sql, rng.Start, rng.End, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	defer rows.Close()

	var out []analytics.Event
	for rows.Next() {
		var ev analytics.Event
		if err := rows.Scan(&ev.Query, &ev.ResultCount, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan search event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search event rows: %w", err)
	}
	return out, nil
}

// rangeClause keeps the window filter uniform across the aggregate queries;
// nil bounds are open ends.
const rangeClause = `($1::timestamptz IS NULL OR timestamp >= $1)
	AND ($2::timestamptz IS NULL OR timestamp <= $2)`
