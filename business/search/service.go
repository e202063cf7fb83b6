package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"marketSearch/business/embedding"
	"marketSearch/business/keyword"
	"marketSearch/business/rerank"
	"marketSearch/business/simindex"
	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

// ErrQueryTooShort is the one deliberate signal on the search path: it lets
// callers distinguish "no query given" from "no results". Every other
// internal failure degrades to the next fallback.
var ErrQueryTooShort = errors.New("query too short")

// ---- Collaborator interfaces ----

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// VectorSearchRepository is the optional richer external index. An empty
// result set means "defer to local search", not an error.
type VectorSearchRepository interface {
	Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ScoredProduct, error)
}

type SimilarScorer interface {
	Similar(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error)
}

type Personalizer interface {
	Recommend(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error)
}

type TrendingProvider interface {
	Trending(ctx context.Context, limit int) ([]domain.ScoredProduct, error)
}

type ResultCache interface {
	Get(ctx context.Context, key string) ([]domain.ScoredProduct, bool)
	Set(ctx context.Context, key string, results []domain.ScoredProduct)
}

// ---- Service ----

// Service composes the scorers into the three query pipelines. All
// collaborators are injected once at construction; vectorRepo and cache may
// be nil and are then skipped.
type Service struct {
	index       *simindex.Index
	embedder    *embedding.Builder
	keyword     *keyword.Matcher
	reranker    *rerank.Reranker
	similar     SimilarScorer
	personalize Personalizer
	trending    TrendingProvider
	productRepo ProductRepository
	vectorRepo  VectorSearchRepository
	cache       ResultCache
	cfg         Config
}

func NewService(
	index *simindex.Index,
	embedder *embedding.Builder,
	keywordMatcher *keyword.Matcher,
	reranker *rerank.Reranker,
	similar SimilarScorer,
	personalize Personalizer,
	trending TrendingProvider,
	productRepo ProductRepository,
	vectorRepo VectorSearchRepository,
	cache ResultCache,
	cfg Config,
) *Service {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = defaultMinQueryLength
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.CandidateFactor <= 0 {
		cfg.CandidateFactor = defaultCandidateFactor
	}
	if cfg.ExternalTimeout <= 0 {
		cfg.ExternalTimeout = defaultExternalTimeout
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = defaultScanTimeout
	}
	if cfg.ExternalWeight <= 0 {
		cfg.ExternalWeight = defaultExternalWeight
	}
	if cfg.LocalWeight <= 0 {
		cfg.LocalWeight = defaultLocalWeight
	}
	return &Service{
		index:       index,
		embedder:    embedder,
		keyword:     keywordMatcher,
		reranker:    reranker,
		similar:     similar,
		personalize: personalize,
		trending:    trending,
		productRepo: productRepo,
		vectorRepo:  vectorRepo,
		cache:       cache,
		cfg:         cfg,
	}
}

// Search runs the text pipeline: vector similarity, keyword fallback,
// re-ranking, and a weighted merge with the external index. It is total
// except for ErrQueryTooShort.
func (s *Service) Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.cfg.MinQueryLength {
		return nil, ErrQueryTooShort
	}

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	candLimit := limit * s.cfg.CandidateFactor

	SearchRequestsTotal.WithLabelValues("search").Inc()

	extCh := make(chan []domain.ScoredProduct, 1)
	go func() {
		extCh <- s.externalSearch(ctx, trimmed, filters, candLimit)
	}()

	local, localOK := s.localSearch(ctx, trimmed, filters, candLimit)
	external := <-extCh

	merged := mergeResults(local, external, s.cfg.LocalWeight, s.cfg.ExternalWeight)

	if len(merged) == 0 && !localOK {
		SearchFallbackTotal.WithLabelValues("search", "trending").Inc()
		if fallback, err := s.trending.Trending(ctx, limit); err == nil {
			merged = fallback
		}
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged, nil
}

// externalSearch queries the external vector index with its own deadline.
// Timeouts and upstream failures are treated identically: no contribution.
func (s *Service) externalSearch(ctx context.Context, query string, filters domain.SearchFilters, limit int) []domain.ScoredProduct {
	if s.vectorRepo == nil {
		return nil
	}

	extCtx, cancel := context.WithTimeout(ctx, s.cfg.ExternalTimeout)
	defer cancel()

	results, err := s.vectorRepo.Search(extCtx, query, filters, limit)
	if err != nil {
		SearchFallbackTotal.WithLabelValues("search", "external").Inc()
		logger.Warn("external_vector_search_failed",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return nil
	}

	for i := range results {
		results[i].Source = domain.SourceExternal
	}

	return results
}

// localSearch is the in-process half of the text pipeline. The second return
// reports whether the catalog scan itself succeeded; a false value means the
// caller may try the trending terminal fallback.
func (s *Service) localSearch(ctx context.Context, query string, filters domain.SearchFilters, candLimit int) ([]domain.ScoredProduct, bool) {
	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	products, err := s.productRepo.FindAll(scanCtx)
	if err != nil {
		logger.Warn("search_catalog_scan_failed",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return nil, false
	}

	byID := make(map[uint64]domain.Product, len(products))
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		if matchesFilters(p, filters) {
			filtered = append(filtered, p)
		}
	}

	base, err := s.index.Search(s.embedder.BuildQuery(query), candLimit)
	if err != nil || len(base) == 0 {
		SearchFallbackTotal.WithLabelValues("search", "keyword").Inc()
		logger.Debug("search_keyword_fallback",
			"trace_id", TraceIDFromContext(ctx),
			"index_error", err,
		)
		base = s.keyword.Search(filtered, query, candLimit)
	}

	candidates := make([]rerank.Candidate, 0, len(base))
	sources := make(map[uint64]string, len(base))
	for _, r := range base {
		p, ok := byID[r.ProductID]
		if !ok || !matchesFilters(p, filters) {
			continue
		}
		candidates = append(candidates, rerank.Candidate{Product: p, Base: r.Score})
		sources[r.ProductID] = r.Source
	}

	reranked := s.reranker.Rerank(query, candidates)

	if len(reranked) == 0 {
		return s.affinityOnly(query, filtered, candLimit), true
	}

	results := make([]domain.ScoredProduct, 0, len(reranked))
	for _, c := range reranked {
		results = append(results, domain.ScoredProduct{
			ProductID: c.Product.ID,
			Score:     c.Score,
			Source:    sources[c.Product.ID],
		})
	}

	return results, true
}

// affinityOnly is the secondary re-sort: when the primary candidate set is
// empty, products are scored by the re-ranker's adjustment alone so intent
// matches still surface.
func (s *Service) affinityOnly(query string, products []domain.Product, limit int) []domain.ScoredProduct {
	results := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		score := s.reranker.Adjustment(query, p)
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredProduct{
			ProductID: p.ID,
			Score:     score,
			Source:    domain.SourceKeyword,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

// Recommend serves the personalized pipeline. The personalizer degrades to
// trending internally, so this entry point is total.
func (s *Service) Recommend(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	SearchRequestsTotal.WithLabelValues("recommend").Inc()

	return s.personalize.Recommend(ctx, userID, limit)
}

// Similar serves pairwise related products. A missing source product yields
// an empty list; an upstream failure degrades to trending.
func (s *Service) Similar(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	SearchRequestsTotal.WithLabelValues("similar").Inc()

	results, err := s.similar.Similar(ctx, productID, limit)
	if err != nil {
		SearchFallbackTotal.WithLabelValues("similar", "trending").Inc()
		logger.Warn("similar_scorer_failed",
			"trace_id", TraceIDFromContext(ctx),
			"product_id", productID,
			"error", err,
		)
		return s.trending.Trending(ctx, limit)
	}

	return results, nil
}

// Trending is the terminal ranking. Results are cached briefly since the
// ordering only shifts with catalog refreshes.
func (s *Service) Trending(ctx context.Context, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	SearchRequestsTotal.WithLabelValues("trending").Inc()

	key := fmt.Sprintf("trending:%d", limit)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	results, err := s.trending.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, results)
	}

	return results, nil
}
