package similar

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

// Pairwise scoring weights and scan bounds for "related products".
const (
	defaultScanWindow = 10
	defaultLimit      = 5

	defaultCategoryWeight = 0.4
	defaultBrandWeight    = 0.3
	defaultTagWeight      = 0.1
	defaultPriceWeight    = 0.2
	defaultPriceBand      = 0.2
)

type Config struct {
	ScanWindow   int
	DefaultLimit int

	CategoryWeight float64
	BrandWeight    float64
	TagWeight      float64
	PriceWeight    float64
	// PriceBand is the relative distance from the source price that still
	// counts as "similar price" (0.2 = within 20%).
	PriceBand float64
}

func DefaultConfig() Config {
	return Config{
		ScanWindow:     defaultScanWindow,
		DefaultLimit:   defaultLimit,
		CategoryWeight: defaultCategoryWeight,
		BrandWeight:    defaultBrandWeight,
		TagWeight:      defaultTagWeight,
		PriceWeight:    defaultPriceWeight,
		PriceBand:      defaultPriceBand,
	}
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// Scorer ranks products pairwise against a source product. A missing source
// yields an empty result, not an error.
type Scorer struct {
	productRepo ProductRepository
	cfg         Config
}

func NewScorer(productRepo ProductRepository, cfg Config) *Scorer {
	if cfg.ScanWindow <= 0 {
		cfg.ScanWindow = defaultScanWindow
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	return &Scorer{productRepo: productRepo, cfg: cfg}
}

func (s *Scorer) Similar(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	source, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			logger.Debug("similar_source_missing", "product_id", productID)
			return []domain.ScoredProduct{}, nil
		}
		return nil, fmt.Errorf("load source product: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	candidates := s.candidateWindow(source, products)

	results := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		results = append(results, domain.ScoredProduct{
			ProductID: p.ID,
			Score:     s.Score(source, p),
			Source:    domain.SourceSimilar,
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

// Score rates how related candidate is to source, clamped to [0,1].
func (s *Scorer) Score(source, candidate domain.Product) float64 {
	var score float64

	if candidate.Category != "" && candidate.Category == source.Category {
		score += s.cfg.CategoryWeight
	}
	if candidate.Brand != "" && candidate.Brand == source.Brand {
		score += s.cfg.BrandWeight
	}
	score += s.cfg.TagWeight * float64(tagOverlap(source.Tags, candidate.Tags))
	if priceWithinBand(source.Price, candidate.Price, s.cfg.PriceBand) {
		score += s.cfg.PriceWeight
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return score
}

// candidateWindow keeps products sharing category, brand, or a tag with the
// source, excluding the source itself, ordered by rating then popularity
// descending and capped to the scan window.
func (s *Scorer) candidateWindow(source domain.Product, products []domain.Product) []domain.Product {
	sourceTags := make(map[string]bool, len(source.Tags))
	for _, t := range source.Tags {
		sourceTags[t] = true
	}

	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID == source.ID {
			continue
		}
		shared := (p.Category != "" && p.Category == source.Category) ||
			(p.Brand != "" && p.Brand == source.Brand) ||
			sharesTag(sourceTags, p.Tags)
		if shared {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].Popularity > candidates[j].Popularity
	})

	if len(candidates) > s.cfg.ScanWindow {
		candidates = candidates[:s.cfg.ScanWindow]
	}

	return candidates
}

func tagOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	count := 0
	for _, t := range b {
		if set[t] {
			count++
		}
	}
	return count
}

func sharesTag(sourceTags map[string]bool, tags []string) bool {
	for _, t := range tags {
		if sourceTags[t] {
			return true
		}
	}
	return false
}

func priceWithinBand(source, candidate, band float64) bool {
	if source <= 0 {
		return false
	}
	diff := candidate - source
	if diff < 0 {
		diff = -diff
	}
	return diff <= source*band
}
