package embedding

// TokenHasher maps a token to a stable integer. It is the pluggable part of
// the vectorizer: swapping it for a real embedding model only touches this
// interface, not the index or ranking code.
type TokenHasher interface {
	Hash(token string) int64
}

// PolynomialHasher is the default hasher: a rolling polynomial hash over the
// token's runes. Deterministic across runs and platforms.
type PolynomialHasher struct{}

func (PolynomialHasher) Hash(token string) int64 {
	var h int64
	for _, r := range token {
		h = h*31 + int64(r)
	}
	return h
}
