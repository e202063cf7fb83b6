package trending

import (
	"context"
	"fmt"
	"sort"

	"marketSearch/domain"
)

const defaultLimit = 10

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// Service is the terminal fallback for every ranking path: deterministic
// popularity ordering. It only fails when the catalog store itself is
// unreachable; there is nothing further to fall back to.
type Service struct {
	productRepo ProductRepository
}

func NewService(productRepo ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

// Trending returns products sorted by popularity, rating, then review count,
// all descending. Ties keep catalog order.
func (s *Service) Trending(ctx context.Context, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].NumReviews > sorted[j].NumReviews
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	results := make([]domain.ScoredProduct, 0, len(sorted))
	for _, p := range sorted {
		results = append(results, domain.ScoredProduct{
			ProductID: p.ID,
			Score:     float64(p.Popularity) / 100,
			Source:    domain.SourceTrending,
		})
	}

	return results, nil
}
