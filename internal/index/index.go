// Package index provides in-memory per-domain vector indexes with
// brute-force cosine similarity search.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"concierge/internal/domain"
)

// Index owns the (chunk, vector) pairs for exactly one domain. It is built
// once and read-only afterwards, so concurrent searches need no locking.
type Index struct {
	domain   domain.Domain
	embedder domain.Embedder
	chunks   []domain.Chunk
	vectors  [][]float32
	minScore float32
}

// Option configures an index at build time.
type Option func(*Index)

// WithMinScore drops results scoring below s. Zero (the default) disables
// the cutoff so every search returns up to k chunks regardless of relevance.
func WithMinScore(s float32) Option {
	return func(ix *Index) { ix.minScore = s }
}

// Build embeds every chunk with the given embedder and returns a searchable
// index. Fails with domain.ErrEmptyCorpus when chunks is empty and with
// domain.ErrEmbeddingProvider when the provider cannot embed a chunk.
func Build(ctx context.Context, emb domain.Embedder, d domain.Domain, chunks []domain.Chunk, opts ...Option) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: domain %q has no chunks", domain.ErrEmptyCorpus, d)
	}
	ix := &Index{
		domain:   d,
		embedder: emb,
		chunks:   append([]domain.Chunk(nil), chunks...),
		vectors:  make([][]float32, len(chunks)),
	}
	for _, opt := range opts {
		opt(ix)
	}
	for i, ch := range ix.chunks {
		vec, err := emb.Embed(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: embedding chunk %s#%d: %v", domain.ErrEmbeddingProvider, ch.SourceID, ch.Index, err)
		}
		l2normalize(vec)
		ix.vectors[i] = vec
	}
	return ix, nil
}

// Domain returns the domain this index serves.
func (ix *Index) Domain() domain.Domain { return ix.domain }

// Len returns the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search embeds the query and returns the k highest-scoring chunks in
// descending score order. Ties are broken by ascending sequence index, then
// source ID, so results are deterministic.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidTopK, k)
	}
	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", domain.ErrEmbeddingProvider, err)
	}
	l2normalize(vec)

	scores := make([]float32, len(ix.vectors))
	for i := range ix.vectors {
		scores[i] = dot(ix.vectors[i], vec)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		if ix.chunks[i].Index != ix.chunks[j].Index {
			return ix.chunks[i].Index < ix.chunks[j].Index
		}
		return ix.chunks[i].SourceID < ix.chunks[j].SourceID
	})

	results := make([]domain.SearchResult, 0, k)
	for _, i := range order {
		if len(results) == k {
			break
		}
		if ix.minScore > 0 && scores[i] < ix.minScore {
			break
		}
		results = append(results, domain.SearchResult{Chunk: ix.chunks[i], Score: scores[i]})
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// l2normalize scales the vector to unit length so cosine similarity
// reduces to a dot product.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
