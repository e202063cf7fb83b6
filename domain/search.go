package domain

// ScoredProduct is a ranked engine result. Scores from different scoring
// paths are not on the same scale; they only become comparable after the
// orchestrator's merge step. Source records which path produced the score.
type ScoredProduct struct {
	ProductID uint64  `json:"product_id"`
	Score     float64 `json:"score"`
	Source    string  `json:"source,omitempty"`
}

// Provenance labels used in ScoredProduct.Source.
const (
	SourceVector       = "vector"
	SourceKeyword      = "keyword"
	SourceExternal     = "external"
	SourcePersonalized = "personalized"
	SourceSimilar      = "similar"
	SourceRelated      = "related"
	SourceTrending     = "trending"
)

type SearchFilters struct {
	Category string  `json:"category,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
}

// RecommendationWeights tune the personalization score. The four weights are
// non-negative and are not required to sum to 1.
type RecommendationWeights struct {
	Price      float64 `json:"price"`
	Brand      float64 `json:"brand"`
	Category   float64 `json:"category"`
	Popularity float64 `json:"popularity"`
}

func DefaultRecommendationWeights() RecommendationWeights {
	return RecommendationWeights{
		Price:      0.3,
		Brand:      0.2,
		Category:   0.3,
		Popularity: 0.2,
	}
}
