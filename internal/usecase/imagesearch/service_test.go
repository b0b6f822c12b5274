package imagesearch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazario/shopsearch/internal/domain/product"
	"github.com/bazario/shopsearch/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	semanticFn   func(query string, threshold float64, limit int) ([]product.Product, search.Outcome)
	keywordFn    func(query string, limit int) ([]product.Product, search.Outcome)
	keywordCalls []string
}

func (m *mockSearcher) Semantic(_ context.Context, query string, threshold float64, limit int) ([]product.Product, search.Outcome) {
	if m.semanticFn != nil {
		return m.semanticFn(query, threshold, limit)
	}
	return nil, search.Outcome{Strategy: search.StrategySemantic}
}

func (m *mockSearcher) Keyword(_ context.Context, query string, limit int) ([]product.Product, search.Outcome) {
	m.keywordCalls = append(m.keywordCalls, query)
	if m.keywordFn != nil {
		return m.keywordFn(query, limit)
	}
	return nil, search.Outcome{Strategy: search.StrategyKeyword}
}

func mkProduct(name, desc string) product.Product {
	return product.Product{ID: uuid.New(), Name: name, Description: desc, InStock: true}
}

// --- Tests ---

func TestMatch_SentinelDescriptionServesGenericSample(t *testing.T) {
	searcher := &mockSearcher{}
	svc := New(searcher, zap.NewNop())

	svc.Match(context.Background(), "Product Search", 10)
	svc.Match(context.Background(), "   ", 10)

	if len(searcher.keywordCalls) != 2 {
		t.Fatalf("keyword calls = %d, want 2", len(searcher.keywordCalls))
	}
	for _, q := range searcher.keywordCalls {
		if q != "product" {
			t.Errorf("generic sample query = %q, want %q", q, "product")
		}
	}
}

func TestMatch_SemanticCandidatesReranked(t *testing.T) {
	shoes := mkProduct("Nike Running Shoes", "")
	mug := mkProduct("Coffee Mug", "")

	searcher := &mockSearcher{
		semanticFn: func(_ string, _ float64, _ int) ([]product.Product, search.Outcome) {
			return []product.Product{mug, shoes}, search.Outcome{Strategy: search.StrategySemantic}
		},
	}
	svc := New(searcher, zap.NewNop())

	products, out := svc.Match(context.Background(), "white running shoes", 10)
	if out.Strategy != search.StrategySemantic {
		t.Errorf("strategy = %q, want semantic", out.Strategy)
	}
	// shoes score the category bonus, the mug scores zero and is dropped.
	if len(products) != 1 || products[0].Name != "Nike Running Shoes" {
		t.Errorf("unexpected rerank result: %v", productNames(products))
	}
	if len(searcher.keywordCalls) != 0 {
		t.Error("keyword fallback must not run when semantic search has candidates")
	}
}

func TestMatch_KeywordFallbackWhenSemanticEmpty(t *testing.T) {
	shoes := mkProduct("Nike Running Shoes", "")
	searcher := &mockSearcher{
		keywordFn: func(_ string, _ int) ([]product.Product, search.Outcome) {
			return []product.Product{shoes}, search.Outcome{Strategy: search.StrategyKeyword}
		},
	}
	svc := New(searcher, zap.NewNop())

	products, out := svc.Match(context.Background(), "running shoes on pavement", 10)
	if out.Strategy != search.StrategyKeyword {
		t.Errorf("strategy = %q, want keyword", out.Strategy)
	}
	if len(products) != 1 {
		t.Errorf("expected keyword candidates, got %v", productNames(products))
	}
}

func TestMatch_AllZeroBonusKeepsIncomingOrder(t *testing.T) {
	a := mkProduct("Coffee Mug", "")
	b := mkProduct("Desk Lamp", "")

	searcher := &mockSearcher{
		semanticFn: func(_ string, _ float64, _ int) ([]product.Product, search.Outcome) {
			return []product.Product{a, b}, search.Outcome{Strategy: search.StrategySemantic}
		},
	}
	svc := New(searcher, zap.NewNop())

	products, _ := svc.Match(context.Background(), "a minimalist desk scene", 10)
	got := productNames(products)
	if len(got) != 2 || got[0] != "Coffee Mug" || got[1] != "Desk Lamp" {
		t.Errorf("zero-bonus rerank must keep order, got %v", got)
	}
}

func TestMatch_EmptyEverywhereReturnsEmpty(t *testing.T) {
	searcher := &mockSearcher{}
	svc := New(searcher, zap.NewNop())

	products, _ := svc.Match(context.Background(), "something obscure", 10)
	if len(products) != 0 {
		t.Errorf("expected no products, got %v", productNames(products))
	}
}

func TestMatch_UsesConfiguredThreshold(t *testing.T) {
	var gotThreshold float64
	searcher := &mockSearcher{
		semanticFn: func(_ string, threshold float64, _ int) ([]product.Product, search.Outcome) {
			gotThreshold = threshold
			return nil, search.Outcome{Strategy: search.StrategySemantic}
		},
	}
	svc := New(searcher, zap.NewNop()).WithThreshold(0.35)

	svc.Match(context.Background(), "black leather wallet", 10)
	if gotThreshold != 0.35 {
		t.Errorf("threshold = %g, want 0.35", gotThreshold)
	}
}

func TestMatch_RerankTruncatesToLimit(t *testing.T) {
	candidates := []product.Product{
		mkProduct("Running Shoes A", ""),
		mkProduct("Running Shoes B", ""),
		mkProduct("Running Shoes C", ""),
	}
	searcher := &mockSearcher{
		semanticFn: func(_ string, _ float64, _ int) ([]product.Product, search.Outcome) {
			return candidates, search.Outcome{Strategy: search.StrategySemantic}
		},
	}
	svc := New(searcher, zap.NewNop())

	products, _ := svc.Match(context.Background(), "running shoes", 2)
	if len(products) != 2 {
		t.Errorf("got %d products, want 2", len(products))
	}
}

func productNames(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
