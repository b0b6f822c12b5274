// Package analytics records search events and serves aggregate views of
// them. Recording is best-effort by contract; reads validate and clamp
// their inputs here so handlers and repositories stay thin.
package analytics

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultSummaryLimit = 10
	maxSummaryLimit     = 100
)

// ErrEmptyQuery rejects analytics writes with nothing to record.
var ErrEmptyQuery = errors.New("analytics: empty query")

// Service validates and forwards analytics reads and writes.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates an analytics service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record persists one search event. It satisfies the search pipeline's
// recorder contract.
func (s *Service) Record(ctx context.Context, query string, resultCount int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}
	if resultCount < 0 {
		resultCount = 0
	}
	return s.repo.Insert(ctx, query, resultCount)
}

// Summary returns aggregate search activity for the window: total event
// count, most frequent queries, and the most recent events. limit is
// clamped to [1, 100] with a default of 10.
func (s *Service) Summary(ctx context.Context, rng Range, limit int) (Summary, error) {
	if limit <= 0 {
		limit = defaultSummaryLimit
	}
	if limit > maxSummaryLimit {
		limit = maxSummaryLimit
	}

	total, err := s.repo.Total(ctx, rng)
	if err != nil {
		return Summary{}, err
	}

	popular, err := s.repo.Popular(ctx, rng, limit)
	if err != nil {
		return Summary{}, err
	}

	recent, err := s.repo.Recent(ctx, rng, limit)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Total: total, Popular: popular, Recent: recent}, nil
}
