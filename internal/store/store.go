// Package store provides the relational claim store, the canonical owner
// of claim identity.
package store

import (
	"context"
	"errors"

	"github.com/factspark/factspark/internal/model"
)

// ErrNotFound is returned when a claim id does not resolve to a row.
var ErrNotFound = errors.New("claim not found")

// ClaimStore persists claim records. Rows are append-only.
type ClaimStore interface {
	// InsertClaim creates a new claim row and returns the store-assigned id.
	InsertClaim(ctx context.Context, claimText, analysisText string) (int64, error)

	// GetClaim fetches a single claim by id. Returns ErrNotFound when the
	// id does not resolve.
	GetClaim(ctx context.Context, id int64) (*model.ClaimRecord, error)

	// ListRecent returns up to limit claims, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.ClaimRecord, error)

	// Close releases the underlying connections.
	Close()
}
