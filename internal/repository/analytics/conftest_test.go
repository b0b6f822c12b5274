package analytics

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// These tests run against a live Postgres prepared with schema/schema.sql
// and skip unless TEST_DATABASE_URL is set, same as the catalog tests.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// uniqueQuery keys each test's events so aggregates never see rows from
// other tests or earlier runs; cleanup removes them by the same key.
func uniqueQuery(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	q := "q-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM search_analytics WHERE query LIKE $1`, q+"%")
	})
	return q
}
