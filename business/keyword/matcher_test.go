//go:build !integration

package keyword

import (
	"testing"

	"marketSearch/domain"
)

func TestScoreFieldWeights(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	p := domain.Product{
		Name:        "Trail Boot",
		Description: "waterproof boot for hiking",
		Category:    "boots",
		Brand:       "Bootmaker",
		Tags:        []string{"boot", "hiking boot", "outdoor"},
	}

	// name 10 + description 5 + category 3 + brand 3 + two matching tags 4
	if got := m.Score(p, "boot"); got != 25 {
		t.Errorf("score = %v, want 25", got)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	p := domain.Product{Name: "iPhone 14"}

	if got := m.Score(p, "IPHONE"); got != 10 {
		t.Errorf("score = %v, want 10", got)
	}
}

func TestScoreNoMatch(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	p := domain.Product{Name: "Espresso Maker", Description: "coffee"}

	if got := m.Score(p, "laptop"); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
}

func TestSearchExcludesZeroScores(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	products := []domain.Product{
		{ID: 1, Name: "Espresso Maker"},
		{ID: 2, Name: "Laptop Stand"},
	}

	results := m.Search(products, "laptop", 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ProductID != 2 {
		t.Errorf("got product %d, want 2", results[0].ProductID)
	}
}

// Ties keep the original catalog order in the output.
func TestSearchStableTieBreak(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	products := []domain.Product{
		{ID: 3, Name: "Desk Lamp"},
		{ID: 1, Name: "Floor Lamp"},
		{ID: 2, Name: "Lamp Shade"},
	}

	results := m.Search(products, "lamp", 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	want := []uint64{3, 1, 2}
	for i, r := range results {
		if r.ProductID != want[i] {
			t.Errorf("position %d = product %d, want %d", i, r.ProductID, want[i])
		}
		if r.Score != 10 {
			t.Errorf("product %d score = %v, want 10", r.ProductID, r.Score)
		}
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	products := []domain.Product{
		{ID: 1, Name: "Lamp A"},
		{ID: 2, Name: "Lamp B"},
		{ID: 3, Name: "Lamp C"},
	}

	results := m.Search(products, "lamp", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}
