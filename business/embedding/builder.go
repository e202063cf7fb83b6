package embedding

import (
	"strings"

	"marketSearch/domain"
)

// Dim is the fixed embedding length. Slots 0-49 carry hashed text tokens,
// 50-57 carry numeric product attributes, 58-99 are reserved.
const (
	Dim       = 100
	textSlots = 50

	slotPrice      = 50
	slotRating     = 51
	slotPopularity = 52
	slotNumReviews = 53
	slotStock      = 54
	slotCategory   = 55
	slotBrand      = 56
	slotDiscount   = 57
)

type Embedding []float64

type Builder struct {
	hasher TokenHasher
}

func NewBuilder(hasher TokenHasher) *Builder {
	if hasher == nil {
		hasher = PolynomialHasher{}
	}
	return &Builder{hasher: hasher}
}

// Build converts a product into its embedding. Pure and deterministic: the
// same attributes always yield the same vector.
func (b *Builder) Build(p domain.Product) Embedding {
	text := strings.Join([]string{
		p.Name,
		p.Description,
		strings.Join(p.Tags, " "),
		strings.Join(p.Features, " "),
	}, " ")

	vec := b.textVector(text)

	vec[slotPrice] = p.Price / 10000
	vec[slotRating] = p.Rating / 5
	vec[slotPopularity] = float64(p.Popularity) / 100
	vec[slotNumReviews] = float64(p.NumReviews) / 100
	vec[slotStock] = float64(p.Stock) / 100
	vec[slotCategory] = float64(len(p.Category)) / 50
	vec[slotBrand] = float64(len(p.Brand)) / 50
	vec[slotDiscount] = p.Discount / 100

	rectify(vec)

	return vec
}

// BuildQuery embeds a raw query string with the same token-hash scheme. The
// numeric attribute slots stay zero.
func (b *Builder) BuildQuery(query string) Embedding {
	vec := b.textVector(query)
	rectify(vec)
	return vec
}

func (b *Builder) textVector(text string) Embedding {
	vec := make(Embedding, Dim)

	tokens := strings.Fields(strings.ToLower(text))
	for i, tok := range tokens {
		if i >= textSlots {
			break
		}
		h := b.hasher.Hash(tok)
		if h < 0 {
			h = -h
		}
		vec[i] = float64(h) / 1_000_000
	}

	return vec
}

// rectify clamps every component to be non-negative.
func rectify(vec Embedding) {
	for i, v := range vec {
		if v < 0 {
			vec[i] = 0
		}
	}
}
