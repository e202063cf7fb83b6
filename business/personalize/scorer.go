package personalize

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

const (
	defaultScanWindow = 20
	defaultLimit      = 10
)

type Config struct {
	// ScanWindow bounds the candidate scan after the profile filter.
	ScanWindow int
	// DefaultLimit is used when the caller passes limit <= 0.
	DefaultLimit int
}

func DefaultConfig() Config {
	return Config{
		ScanWindow:   defaultScanWindow,
		DefaultLimit: defaultLimit,
	}
}

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type HistoryRepository interface {
	FindUserHistory(ctx context.Context, userID uint) (domain.UserHistory, error)
}

type PreferenceRepository interface {
	FindUserPreferences(ctx context.Context, userID uint) (domain.UserPreferences, error)
}

type TrendingProvider interface {
	Trending(ctx context.Context, limit int) ([]domain.ScoredProduct, error)
}

// Scorer builds a fresh interest profile per request and scores catalog
// candidates against it. Every failure path degrades to the trending
// fallback; Recommend never errors short of the catalog being unreachable
// on the trending path itself.
type Scorer struct {
	productRepo ProductRepository
	historyRepo HistoryRepository
	prefRepo    PreferenceRepository
	trending    TrendingProvider
	cfg         Config
}

func NewScorer(
	productRepo ProductRepository,
	historyRepo HistoryRepository,
	prefRepo PreferenceRepository,
	trending TrendingProvider,
	cfg Config,
) *Scorer {
	if cfg.ScanWindow <= 0 {
		cfg.ScanWindow = defaultScanWindow
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	return &Scorer{
		productRepo: productRepo,
		historyRepo: historyRepo,
		prefRepo:    prefRepo,
		trending:    trending,
		cfg:         cfg,
	}
}

func (s *Scorer) Recommend(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	if userID == 0 {
		logger.Debug("personalize_fallback", "reason", "missing user reference")
		return s.trending.Trending(ctx, limit)
	}

	history, err := s.historyRepo.FindUserHistory(ctx, userID)
	if err != nil {
		logger.Warn("personalize_fallback", "reason", "history lookup failed", "user_id", userID, "error", err)
		return s.trending.Trending(ctx, limit)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Warn("personalize_fallback", "reason", "catalog load failed", "user_id", userID, "error", err)
		return s.trending.Trending(ctx, limit)
	}

	catalog := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	profile := BuildProfile(history, catalog)
	if len(profile.Categories) == 0 {
		logger.Debug("personalize_fallback", "reason", "empty profile", "user_id", userID)
		return s.trending.Trending(ctx, limit)
	}

	prefs := s.loadPreferences(ctx, userID)
	weights := prefs.Weights()

	candidates := candidateWindow(products, profile, s.cfg.ScanWindow)

	results := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		results = append(results, domain.ScoredProduct{
			ProductID: p.ID,
			Score:     scoreCandidate(p, profile, prefs, weights),
			Source:    domain.SourcePersonalized,
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

// loadPreferences tolerates a missing preferences row: weights then fall
// back to the documented defaults.
func (s *Scorer) loadPreferences(ctx context.Context, userID uint) domain.UserPreferences {
	if s.prefRepo == nil {
		return domain.UserPreferences{UserID: userID}
	}

	prefs, err := s.prefRepo.FindUserPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			logger.Warn("personalize_preferences_failed", "user_id", userID, "error", err)
		}
		return domain.UserPreferences{UserID: userID}
	}

	return prefs
}

// candidateWindow filters the catalog by profile affinity, orders by rating
// then popularity descending, and caps the scan.
func candidateWindow(products []domain.Product, profile InterestProfile, window int) []domain.Product {
	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if profile.hasCategory(p.Category) || profile.hasBrand(p.Brand) || profile.hasAnyTag(p.Tags) {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return candidates[i].Popularity > candidates[j].Popularity
	})

	if len(candidates) > window {
		candidates = candidates[:window]
	}

	return candidates
}

func scoreCandidate(
	p domain.Product,
	profile InterestProfile,
	prefs domain.UserPreferences,
	weights domain.RecommendationWeights,
) float64 {
	var score float64

	if profile.hasCategory(p.Category) {
		score += weights.Category
	}
	if profile.hasBrand(p.Brand) {
		score += weights.Brand
	}
	if prefs.MaxPrice > 0 && p.Price >= prefs.MinPrice && p.Price <= prefs.MaxPrice {
		score += weights.Price
	}
	score += weights.Popularity * (float64(p.Popularity) / 100)

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return score
}
