package rerank

import (
	"sort"
	"strings"

	"marketSearch/domain"
)

// Candidate pairs a product with its upstream base score. Rerank fills Score
// from Base plus affinity adjustments; Base is never touched, which makes
// re-ranking an already-ranked set idempotent.
type Candidate struct {
	Product domain.Product
	Base    float64
	Score   float64
}

type Reranker struct {
	cfg Config
}

func NewReranker(cfg Config) *Reranker {
	return &Reranker{cfg: cfg}
}

func (r *Reranker) Config() Config {
	return r.cfg
}

// Rerank applies intent affinity, conflict penalties, exact-name and brand
// bonuses on top of the candidates' base scores, then orders descending by
// final score. Equal scores keep their incoming order. The input slice is
// not mutated.
func (r *Reranker) Rerank(query string, candidates []Candidate) []Candidate {
	intents := DetectIntents(query)
	brand, brandMentioned := queryBrand(query)
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		c.Score = c.Base + r.adjustment(q, intents, brand, brandMentioned, c.Product)
		out[i] = c
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Adjustment computes the affinity delta for one product against a raw
// query. Used by the orchestrator's secondary re-sort when the primary
// candidate set comes back empty.
func (r *Reranker) Adjustment(query string, p domain.Product) float64 {
	intents := DetectIntents(query)
	brand, brandMentioned := queryBrand(query)
	return r.adjustment(strings.ToLower(strings.TrimSpace(query)), intents, brand, brandMentioned, p)
}

func (r *Reranker) adjustment(query string, intents []Intent, queryBrand string, brandMentioned bool, p domain.Product) float64 {
	name := strings.ToLower(p.Name)
	productBrand := strings.ToLower(p.Brand)
	category := strings.ToLower(p.Category)

	var delta float64

	for _, intent := range intents {
		// One boost per intent, magnitude by the strongest matching field.
		switch {
		case fieldMatchesLexicon(name, intent):
			delta += r.cfg.NameAffinityBoost
		case fieldMatchesLexicon(productBrand, intent):
			delta += r.cfg.BrandAffinityBoost
		case categoryMatchesIntent(category, intent):
			delta += r.cfg.CategoryAffinityBoost
		}

		for _, conflict := range intentConflicts[intent] {
			if category == conflict {
				delta += r.cfg.ConflictPenalty
				break
			}
		}
	}

	if len(intents) == 0 && query != "" && strings.Contains(name, query) {
		delta += r.cfg.ExactNameBonus
	}

	if brandMentioned {
		switch {
		case productBrand == queryBrand:
			delta += r.cfg.SameBrandBonus
		case relatedBrands(queryBrand, productBrand):
			delta += r.cfg.RelatedBrandBonus
		}
	}

	return delta
}

// fieldMatchesLexicon reports whether the field contains any of the intent's
// lexicon terms.
func fieldMatchesLexicon(field string, intent Intent) bool {
	if field == "" {
		return false
	}
	for _, term := range intentLexicons[intent] {
		if strings.Contains(field, term) {
			return true
		}
	}
	return false
}

// categoryMatchesIntent also accepts the intent name itself as a category,
// so "phone" products match the phone intent without a lexicon hit.
func categoryMatchesIntent(category string, intent Intent) bool {
	if category == "" {
		return false
	}
	if category == string(intent) {
		return true
	}
	return fieldMatchesLexicon(category, intent)
}
