package personalize

import "marketSearch/domain"

// Profile caps. Categories and brands keep the 5 most recently encountered
// values, tags keep 10.
const (
	maxProfileCategories = 5
	maxProfileBrands     = 5
	maxProfileTags       = 10
)

// InterestProfile is the ephemeral summary of a user's history. Built fresh
// per request, never cached by the engine.
type InterestProfile struct {
	Categories []string
	Brands     []string
	Tags       []string
}

// BuildProfile scans browsing then purchase history (most recent first) and
// collects category, brand, and tag values from each referenced product,
// deduplicated in encounter order and capped.
func BuildProfile(history domain.UserHistory, catalog map[uint64]domain.Product) InterestProfile {
	var profile InterestProfile

	seenCat := make(map[string]bool)
	seenBrand := make(map[string]bool)
	seenTag := make(map[string]bool)

	events := make([]domain.InteractionEvent, 0, len(history.Browsing)+len(history.Purchases))
	events = append(events, history.Browsing...)
	events = append(events, history.Purchases...)

	for _, ev := range events {
		p, ok := catalog[ev.ProductID]
		if !ok {
			continue
		}

		if p.Category != "" && !seenCat[p.Category] && len(profile.Categories) < maxProfileCategories {
			seenCat[p.Category] = true
			profile.Categories = append(profile.Categories, p.Category)
		}
		if p.Brand != "" && !seenBrand[p.Brand] && len(profile.Brands) < maxProfileBrands {
			seenBrand[p.Brand] = true
			profile.Brands = append(profile.Brands, p.Brand)
		}
		for _, tag := range p.Tags {
			if tag == "" || seenTag[tag] || len(profile.Tags) >= maxProfileTags {
				continue
			}
			seenTag[tag] = true
			profile.Tags = append(profile.Tags, tag)
		}
	}

	return profile
}

func (p InterestProfile) hasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (p InterestProfile) hasBrand(brand string) bool {
	for _, b := range p.Brands {
		if b == brand {
			return true
		}
	}
	return false
}

func (p InterestProfile) hasAnyTag(tags []string) bool {
	if len(p.Tags) == 0 {
		return false
	}
	set := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		set[t] = true
	}
	for _, t := range tags {
		if set[t] {
			return true
		}
	}
	return false
}
