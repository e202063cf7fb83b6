package rerank

// Boost and penalty magnitudes. Hand-tuned heuristics: tests pin these as
// golden values, tuning happens here and nowhere else.
const (
	defaultNameAffinityBoost     = 20.0
	defaultBrandAffinityBoost    = 15.0
	defaultCategoryAffinityBoost = 10.0
	defaultConflictPenalty       = -30.0
	defaultExactNameBonus        = 15.0
	defaultSameBrandBonus        = 8.0
	defaultRelatedBrandBonus     = 3.0
)

type Config struct {
	// Affinity boost per detected intent, by strongest matching field.
	NameAffinityBoost     float64
	BrandAffinityBoost    float64
	CategoryAffinityBoost float64

	// Applied when the product's category conflicts with a detected intent.
	ConflictPenalty float64

	// Flat bonus for literal name matches when no intent fired.
	ExactNameBonus float64

	// Brand-relationship bonuses when the query mentions a known brand.
	SameBrandBonus    float64
	RelatedBrandBonus float64
}

func DefaultConfig() Config {
	return Config{
		NameAffinityBoost:     defaultNameAffinityBoost,
		BrandAffinityBoost:    defaultBrandAffinityBoost,
		CategoryAffinityBoost: defaultCategoryAffinityBoost,
		ConflictPenalty:       defaultConflictPenalty,
		ExactNameBonus:        defaultExactNameBonus,
		SameBrandBonus:        defaultSameBrandBonus,
		RelatedBrandBonus:     defaultRelatedBrandBonus,
	}
}
