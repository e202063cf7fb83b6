package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

// Proximity weights for the related-products fallback path. Additive,
// keyword-matcher style.
const (
	relatedCategoryWeight = 3.0
	relatedBrandWeight    = 3.0
	relatedPriceWeight    = 2.0
	relatedPriceBand      = 0.2
)

// Related serves "related to product X". The similar-item scorer is primary;
// on failure a category/brand/price/rating proximity scan takes over. The
// optional category and brand filters take priority when they leave any
// results, otherwise the unfiltered ranking is returned.
func (s *Service) Related(ctx context.Context, productID uint64, category, brand string, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	SearchRequestsTotal.WithLabelValues("related").Inc()

	candLimit := limit * s.cfg.CandidateFactor

	results, err := s.similar.Similar(ctx, productID, candLimit)
	if err != nil {
		SearchFallbackTotal.WithLabelValues("related", "proximity").Inc()
		logger.Warn("related_primary_failed",
			"trace_id", TraceIDFromContext(ctx),
			"product_id", productID,
			"error", err,
		)
		results, err = s.relatedByProximity(ctx, productID, candLimit)
		if err != nil {
			SearchFallbackTotal.WithLabelValues("related", "trending").Inc()
			return s.trending.Trending(ctx, limit)
		}
	}

	for i := range results {
		results[i].Source = domain.SourceRelated
	}

	results = s.applyRelatedFilter(ctx, results, category, brand)

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// relatedByProximity is the degraded related path: additive scoring over
// shared category, shared brand, price band, and rating closeness.
func (s *Service) relatedByProximity(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	source, err := s.productRepo.FindByID(scanCtx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return []domain.ScoredProduct{}, nil
		}
		return nil, fmt.Errorf("load source product: %w", err)
	}

	products, err := s.productRepo.FindAll(scanCtx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	results := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		if p.ID == source.ID {
			continue
		}

		var score float64
		if p.Category != "" && p.Category == source.Category {
			score += relatedCategoryWeight
		}
		if p.Brand != "" && p.Brand == source.Brand {
			score += relatedBrandWeight
		}
		if source.Price > 0 {
			diff := p.Price - source.Price
			if diff < 0 {
				diff = -diff
			}
			if diff <= source.Price*relatedPriceBand {
				score += relatedPriceWeight
			}
		}
		ratingDiff := p.Rating - source.Rating
		if ratingDiff < 0 {
			ratingDiff = -ratingDiff
		}
		score += 1 - ratingDiff/5

		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredProduct{
			ProductID: p.ID,
			Score:     score,
			Source:    domain.SourceRelated,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// applyRelatedFilter keeps only results matching the requested category or
// brand. An empty filtered set falls back to the unfiltered ranking.
func (s *Service) applyRelatedFilter(ctx context.Context, results []domain.ScoredProduct, category, brand string) []domain.ScoredProduct {
	if category == "" && brand == "" {
		return results
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	products, err := s.productRepo.FindAll(scanCtx)
	if err != nil {
		logger.Warn("related_filter_scan_failed",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return results
	}

	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	filtered := make([]domain.ScoredProduct, 0, len(results))
	for _, r := range results {
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if brand != "" && p.Brand != brand {
			continue
		}
		filtered = append(filtered, r)
	}

	if len(filtered) == 0 {
		return results
	}

	return filtered
}
