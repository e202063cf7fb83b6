package search

import (
	"sort"

	"marketSearch/domain"
)

// mergeResults combines local and external candidate sets. Each source's
// scores are weighted first (they are not on the same scale), duplicates are
// collapsed by product id keeping the higher weighted score, and the merged
// set is ordered descending with first-seen order breaking ties.
func mergeResults(local, external []domain.ScoredProduct, localWeight, externalWeight float64) []domain.ScoredProduct {
	type entry struct {
		result domain.ScoredProduct
		order  int
	}

	seen := make(map[uint64]int, len(local)+len(external))
	merged := make([]entry, 0, len(local)+len(external))

	add := func(r domain.ScoredProduct, weight float64) {
		r.Score *= weight
		if idx, ok := seen[r.ProductID]; ok {
			if r.Score > merged[idx].result.Score {
				merged[idx].result = r
			}
			return
		}
		seen[r.ProductID] = len(merged)
		merged = append(merged, entry{result: r, order: len(merged)})
	}

	for _, r := range external {
		add(r, externalWeight)
	}
	for _, r := range local {
		add(r, localWeight)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].result.Score > merged[j].result.Score
	})

	out := make([]domain.ScoredProduct, 0, len(merged))
	for _, e := range merged {
		out = append(out, e.result)
	}

	return out
}

// matchesFilters applies the optional query filters to a product.
func matchesFilters(p domain.Product, filters domain.SearchFilters) bool {
	if filters.Category != "" && p.Category != filters.Category {
		return false
	}
	if filters.Brand != "" && p.Brand != filters.Brand {
		return false
	}
	if filters.MinPrice > 0 && p.Price < filters.MinPrice {
		return false
	}
	if filters.MaxPrice > 0 && p.Price > filters.MaxPrice {
		return false
	}
	return true
}
