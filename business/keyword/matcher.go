package keyword

import (
	"sort"
	"strings"

	"marketSearch/domain"
)

// Field weights for the substring matcher. Purely additive; penalties belong
// to the re-ranker.
const (
	defaultNameWeight        = 10.0
	defaultDescriptionWeight = 5.0
	defaultCategoryWeight    = 3.0
	defaultBrandWeight       = 3.0
	defaultTagWeight         = 2.0
)

type Config struct {
	NameWeight        float64
	DescriptionWeight float64
	CategoryWeight    float64
	BrandWeight       float64
	TagWeight         float64
}

func DefaultConfig() Config {
	return Config{
		NameWeight:        defaultNameWeight,
		DescriptionWeight: defaultDescriptionWeight,
		CategoryWeight:    defaultCategoryWeight,
		BrandWeight:       defaultBrandWeight,
		TagWeight:         defaultTagWeight,
	}
}

// Matcher is the terminal text-search fallback: case-insensitive substring
// scoring over product fields. No external calls, cannot fail.
type Matcher struct {
	cfg Config
}

func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Score rates one product against the query. Zero means no field matched.
func (m *Matcher) Score(p domain.Product, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	var score float64

	if strings.Contains(strings.ToLower(p.Name), q) {
		score += m.cfg.NameWeight
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		score += m.cfg.DescriptionWeight
	}
	if strings.Contains(strings.ToLower(p.Category), q) {
		score += m.cfg.CategoryWeight
	}
	if strings.Contains(strings.ToLower(p.Brand), q) {
		score += m.cfg.BrandWeight
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += m.cfg.TagWeight
		}
	}

	return score
}

// Search scores every product, drops zero scores, and returns the top
// `limit` descending. Ties keep catalog order.
func (m *Matcher) Search(products []domain.Product, query string, limit int) []domain.ScoredProduct {
	if limit <= 0 {
		return []domain.ScoredProduct{}
	}

	results := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		score := m.Score(p, query)
		if score == 0 {
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
