// Package vector provides claim-embedding storage and similarity search.
package vector

import "context"

// MetadataClaimText is the payload key carrying the denormalized claim
// text, so a similarity hit can surface provenance without a second
// relational read.
const MetadataClaimText = "original_claim_text"

// Entry is a claim embedding keyed by the owning claim record's id.
// Entries are written exactly once, immediately after their claim row,
// and never updated or deleted.
type Entry struct {
	ID       string // string form of the claim record id
	Vector   []float32
	Metadata map[string]string
}

// Match is a single result from a similarity search. Score is cosine
// similarity in [0,1].
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// Repository provides vector storage and similarity search.
type Repository interface {
	// Upsert inserts or updates an entry.
	Upsert(ctx context.Context, entry Entry) error
	// Search finds the top-k most similar entries.
	Search(ctx context.Context, vector []float32, topK int) ([]Match, error)
	// Close releases resources.
	Close() error
}
