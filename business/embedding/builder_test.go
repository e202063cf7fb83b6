//go:build !integration

package embedding

import (
	"strings"
	"testing"

	"marketSearch/domain"
)

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          1,
		Name:        "Red Runner",
		Description: "lightweight running shoe",
		Category:    "shoes",
		Brand:       "Nike",
		Price:       120,
		Rating:      4.5,
		NumReviews:  320,
		Popularity:  85,
		Stock:       42,
		Discount:    15,
		Tags:        []string{"running", "sport"},
		Features:    []string{"mesh upper"},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(PolynomialHasher{})
	p := sampleProduct()

	first := b.Build(p)
	second := b.Build(p)

	if len(first) != Dim || len(second) != Dim {
		t.Fatalf("expected %d-dim embeddings, got %d and %d", Dim, len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between builds: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestBuildNumericSlots(t *testing.T) {
	b := NewBuilder(nil)
	p := sampleProduct()

	vec := b.Build(p)

	checks := []struct {
		slot int
		want float64
	}{
		{slotPrice, 120.0 / 10000},
		{slotRating, 4.5 / 5},
		{slotPopularity, 85.0 / 100},
		{slotNumReviews, 320.0 / 100},
		{slotStock, 42.0 / 100},
		{slotCategory, 5.0 / 50},
		{slotBrand, 4.0 / 50},
		{slotDiscount, 15.0 / 100},
	}
	for _, c := range checks {
		if vec[c.slot] != c.want {
			t.Errorf("slot %d = %v, want %v", c.slot, vec[c.slot], c.want)
		}
	}

	// slots 58-99 are reserved
	for i := slotDiscount + 1; i < Dim; i++ {
		if vec[i] != 0 {
			t.Errorf("reserved slot %d = %v, want 0", i, vec[i])
		}
	}
}

func TestBuildTokenSlots(t *testing.T) {
	b := NewBuilder(PolynomialHasher{})
	p := domain.Product{Name: "Red Runner"}

	vec := b.Build(p)

	h := PolynomialHasher{}.Hash("red")
	if h < 0 {
		h = -h
	}
	if want := float64(h) / 1_000_000; vec[0] != want {
		t.Errorf("slot 0 = %v, want %v", vec[0], want)
	}
	if vec[2] != 0 {
		t.Errorf("slot 2 = %v, want 0 for a two-token product", vec[2])
	}
}

func TestBuildTokenCap(t *testing.T) {
	b := NewBuilder(nil)

	p := domain.Product{Description: strings.Repeat("token ", 80)}
	vec := b.Build(p)

	for i := 0; i < textSlots; i++ {
		if vec[i] == 0 {
			t.Fatalf("slot %d should carry a token hash", i)
		}
	}
}

func TestBuildZeroProduct(t *testing.T) {
	b := NewBuilder(nil)

	vec := b.Build(domain.Product{})
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("slot %d = %v, want zero vector for empty product", i, v)
		}
	}
}

func TestBuildComponentsNonNegative(t *testing.T) {
	b := NewBuilder(nil)
	vec := b.Build(sampleProduct())

	for i, v := range vec {
		if v < 0 {
			t.Errorf("slot %d = %v, rectification should clamp negatives", i, v)
		}
	}
}

func TestBuildQuerySkipsNumericSlots(t *testing.T) {
	b := NewBuilder(nil)

	vec := b.BuildQuery("red runner shoes")

	for i := textSlots; i < Dim; i++ {
		if vec[i] != 0 {
			t.Errorf("query slot %d = %v, want 0", i, vec[i])
		}
	}
	if vec[0] == 0 || vec[1] == 0 || vec[2] == 0 {
		t.Error("query token slots should be populated")
	}
}
