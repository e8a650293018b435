// Package memory implements vector.Repository in process memory. It is
// used by tests and local development where no Qdrant is running.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/factspark/factspark/internal/vector"
)

// Repository is an in-memory cosine-similarity vector store.
type Repository struct {
	mu      sync.RWMutex
	entries map[string]vector.Entry
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{entries: make(map[string]vector.Entry)}
}

// Upsert inserts or updates an entry
func (r *Repository) Upsert(ctx context.Context, entry vector.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

// Search finds the top-k most similar entries by cosine similarity
func (r *Repository) Search(ctx context.Context, vec []float32, topK int) ([]vector.Match, error) {
	if topK <= 0 {
		topK = 1
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]vector.Match, 0, len(r.entries))
	for _, e := range r.entries {
		matches = append(matches, vector.Match{
			ID:       e.ID,
			Score:    CosineSimilarity(vec, e.Vector),
			Metadata: e.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len returns the number of stored entries.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close is a no-op for the in-memory store
func (r *Repository) Close() error {
	return nil
}

// CosineSimilarity computes (A · B) / (||A|| * ||B||). Returns 0 for
// mismatched or zero vectors.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

var _ vector.Repository = (*Repository)(nil)
