//go:build !integration

package simindex

import (
	"errors"
	"math"
	"testing"

	"marketSearch/business/embedding"
	"marketSearch/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "iPhone 14", Description: "flagship smartphone", Category: "phone", Brand: "Apple", Price: 999, Rating: 4.8, Popularity: 90},
		{ID: 2, Name: "Galaxy S23", Description: "android smartphone", Category: "phone", Brand: "Samsung", Price: 899, Rating: 4.6, Popularity: 80},
		{ID: 3, Name: "Espresso Maker", Description: "kitchen appliance", Category: "home", Brand: "DeLonghi", Price: 250, Rating: 4.2, Popularity: 40},
	}
}

func TestCosineBounds(t *testing.T) {
	b := embedding.NewBuilder(nil)
	products := testCatalog()

	vecs := make([]embedding.Embedding, 0, len(products))
	for _, p := range products {
		vecs = append(vecs, b.Build(p))
	}

	for i, a := range vecs {
		for j, v := range vecs {
			sim := Cosine(a, v)
			if sim < 0 || sim > 1 {
				t.Errorf("cosine(%d,%d) = %v out of [0,1]", i, j, sim)
			}
		}
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	b := embedding.NewBuilder(nil)
	vec := b.Build(testCatalog()[0])

	if sim := Cosine(vec, vec); math.Abs(sim-1) > 1e-12 {
		t.Errorf("self similarity = %v, want 1", sim)
	}
}

func TestCosineZeroVector(t *testing.T) {
	b := embedding.NewBuilder(nil)
	zero := make(embedding.Embedding, embedding.Dim)
	vec := b.Build(testCatalog()[0])

	if sim := Cosine(zero, vec); sim != 0 {
		t.Errorf("cosine(zero, v) = %v, want 0", sim)
	}
	if sim := Cosine(zero, zero); sim != 0 {
		t.Errorf("cosine(zero, zero) = %v, want 0", sim)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := NewIndex()
	b := embedding.NewBuilder(nil)

	_, err := ix.Search(b.BuildQuery("smartphone"), 10)
	if !errors.Is(err, ErrIndexEmpty) {
		t.Fatalf("expected ErrIndexEmpty, got %v", err)
	}
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	b := embedding.NewBuilder(nil)
	ix := NewIndex()
	ix.Rebuild(testCatalog(), b)

	results, err := ix.Search(b.BuildQuery("flagship smartphone"), 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending at %d: %v > %v", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	b := embedding.NewBuilder(nil)

	// Identical products hash to identical embeddings and tie exactly.
	twins := []domain.Product{
		{ID: 7, Name: "Mono Speaker", Category: "audio", Brand: "JBL"},
		{ID: 8, Name: "Mono Speaker", Category: "audio", Brand: "JBL"},
	}

	ix := NewIndex()
	ix.Rebuild(twins, b)

	results, err := ix.Search(b.BuildQuery("mono speaker"), 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("expected a tie, got %v and %v", results[0].Score, results[1].Score)
	}
	if results[0].ProductID != 7 || results[1].ProductID != 8 {
		t.Errorf("tie should keep catalog order, got %d then %d", results[0].ProductID, results[1].ProductID)
	}
}

func TestRebuildSwapsSnapshot(t *testing.T) {
	b := embedding.NewBuilder(nil)
	ix := NewIndex()

	ix.Rebuild(testCatalog(), b)
	if ix.Size() != 3 {
		t.Fatalf("size = %d, want 3", ix.Size())
	}

	ix.Rebuild(testCatalog()[:1], b)
	if ix.Size() != 1 {
		t.Fatalf("size after rebuild = %d, want 1", ix.Size())
	}
}
