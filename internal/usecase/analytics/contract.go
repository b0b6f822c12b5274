package analytics

import (
	"context"
	"time"
)

// Range is an optional time window for aggregate queries. Nil bounds are
// open ends.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Event is one recorded search.
type Event struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// PopularQuery is a query with its frequency inside the window.
type PopularQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Summary aggregates search activity for a window.
type Summary struct {
	Total   int64          `json:"total_searches"`
	Popular []PopularQuery `json:"popular_queries"`
	Recent  []Event        `json:"recent_searches"`
}

// Repository is the analytics store contract.
type Repository interface {
	Insert(ctx context.Context, query string, resultCount int) error
	Total(ctx context.Context, rng Range) (int64, error)
	Popular(ctx context.Context, rng Range, limit int) ([]PopularQuery, error)
	Recent(ctx context.Context, rng Range, limit int) ([]Event, error)
}
