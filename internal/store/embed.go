package store

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
)

// Embedder maps text to a fixed-size vector. Implementations must be
// deterministic: equal text yields equal vectors.
type Embedder interface {
	Embed(text string) ([]float64, error)
	Dims() int
}

// HashEmbedder is a deterministic offline embedder: the text hashes to a
// seed, and the vector is drawn from a PRNG with that seed. Equal strings
// embed identically, so exact-text matches rank first. It stands in for a
// real embedding model in tests and offline setups.
type HashEmbedder struct {
	Size int
}

// Embed returns a unit-variance vector seeded by the FNV-1a hash of text.
func (e HashEmbedder) Embed(text string) ([]float64, error) {
	if e.Size <= 0 {
		return nil, fmt.Errorf("embedder: size must be positive, got %d", e.Size)
	}
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, e.Size)
	for i := range vec {
		vec[i] = rng.NormFloat64()
	}
	return vec, nil
}

// Dims returns the vector size.
func (e HashEmbedder) Dims() int { return e.Size }

// cosine returns the cosine similarity of two equal-length vectors, or 0 if
// either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type scored struct {
	id    string
	score float64
}

// rank sorts by descending score, ties broken by ascending id, and applies
// the limit. The id tie-break keeps Search stable within one call.
func rank(items []scored, limit int) []string {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].id < items[j].id
	})
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return ids
}
