package catalog

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// These tests run against a live Postgres prepared with schema/schema.sql
// (pgvector included). They skip unless TEST_DATABASE_URL is set:
//
//	TEST_DATABASE_URL=postgres://localhost/shopsearch_test go test ./internal/repository/...
//
// Every test seeds its own rows keyed by a unique term and removes them on
// cleanup, so a dedicated test database stays reusable across runs.
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

// uniqueTerm returns a token that matches nothing else in the catalog, so
// full-text and substring queries only see rows the test seeded itself.
func uniqueTerm(t *testing.T) string {
	t.Helper()
	return "zq" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

type seedProduct struct {
	name        string
	description string
	brand       string
	rating      float64
	reviews     int
	inStock     bool
	approval    string
	status      string
	vendorID    *uuid.UUID
	embedding   []float32
}

func insertProduct(t *testing.T, pool *pgxpool.Pool, sp seedProduct) uuid.UUID {
	t.Helper()

	id := uuid.New()
	var emb any
	if sp.embedding != nil {
		emb = pgvector.NewVector(sp.embedding)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products
			(id, name, description, brand, rating, reviews, in_stock,
			 approval_status, status, vendor_id, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, sp.name, sp.description, sp.brand, sp.rating, sp.reviews, sp.inStock,
		sp.approval, sp.status, sp.vendorID, emb)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	})
	return id
}

func insertVendor(t *testing.T, pool *pgxpool.Pool, businessName string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO vendors (id, business_name) VALUES ($1, $2)`, id, businessName)
	if err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	})
	return id
}

// eligible returns a seed row that passes every lifecycle filter; tests
// flip individual fields to make rows ineligible.
func eligible(name string) seedProduct {
	return seedProduct{
		name:     name,
		rating:   4.5,
		reviews:  10,
		inStock:  true,
		approval: "approved",
		status:   "active",
	}
}

// testEmbedding builds a unit vector aligned with one axis so cosine
// similarity between equal seeds is exactly 1.
func testEmbedding(axis int) []float32 {
	vec := make([]float32, 1536)
	vec[axis] = 1
	return vec
}
