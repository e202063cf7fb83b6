package simindex

import (
	"errors"
	"math"
	"sort"
	"sync/atomic"

	"marketSearch/business/embedding"
	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

// ErrIndexEmpty signals that no snapshot has been built yet. The orchestrator
// reacts by degrading to the keyword matcher.
var ErrIndexEmpty = errors.New("similarity index is empty")

// snapshot is an immutable catalog view: product ids in catalog order plus
// one embedding per id. Rebuilds produce a fresh snapshot and swap it in
// atomically, so readers never observe a half-built index.
type snapshot struct {
	ids     []uint64
	vectors map[uint64]embedding.Embedding
}

type Index struct {
	snap atomic.Pointer[snapshot]
}

func NewIndex() *Index {
	return &Index{}
}

// Rebuild computes embeddings for the full catalog and swaps them in as the
// new snapshot. Products arrive in catalog order and keep that order for
// tie-breaking.
func (ix *Index) Rebuild(products []domain.Product, builder *embedding.Builder) {
	snap := &snapshot{
		ids:     make([]uint64, 0, len(products)),
		vectors: make(map[uint64]embedding.Embedding, len(products)),
	}

	for _, p := range products {
		snap.ids = append(snap.ids, p.ID)
		snap.vectors[p.ID] = builder.Build(p)
	}

	ix.snap.Store(snap)

	logger.Debug("similarity_index_rebuilt", "products", len(snap.ids))
}

// Size reports how many products the current snapshot holds.
func (ix *Index) Size() int {
	snap := ix.snap.Load()
	if snap == nil {
		return 0
	}
	return len(snap.ids)
}

// Search scores the query embedding against every stored product embedding
// and returns the top `limit` by cosine similarity, descending. Equal scores
// keep catalog order.
func (ix *Index) Search(query embedding.Embedding, limit int) ([]domain.ScoredProduct, error) {
	snap := ix.snap.Load()
	if snap == nil || len(snap.ids) == 0 {
		return nil, ErrIndexEmpty
	}
	if limit <= 0 {
		return []domain.ScoredProduct{}, nil
	}

	results := make([]domain.ScoredProduct, 0, len(snap.ids))
	for _, id := range snap.ids {
		results = append(results, domain.ScoredProduct{
			ProductID: id,
			Score:     Cosine(query, snap.vectors[id]),
			Source:    domain.SourceVector,
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

// Cosine returns dot(a,b) / (|a|*|b|), clamped to [0,1]. Zero-magnitude
// vectors compare as 0, never a division by zero. Components are
// non-negative by construction so the ratio cannot go below zero.
func Cosine(a, b embedding.Embedding) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		magA += v * v
	}
	for _, v := range b {
		magB += v * v
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}

	return sim
}
