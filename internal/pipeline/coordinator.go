package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/factspark/factspark/internal/store"
	"github.com/factspark/factspark/internal/vector"
)

// Coordinator performs the two-store write for a freshly generated
// analysis. The ordering is a correctness requirement: the vector entry
// is keyed by the relational row id, so the row must exist first. The
// two writes are not atomic and there is no compensating transaction;
// the index is an advisory cache, not a source of truth.
type Coordinator struct {
	claims store.ClaimStore
	index  vector.Repository
	logger *slog.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(claims store.ClaimStore, index vector.Repository, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{claims: claims, index: index, logger: logger}
}

// PersistNew inserts the claim row, then upserts the vector entry keyed
// by the new row's id.
//
// If the insert fails the whole operation fails with
// ErrPersistenceFailed; the caller still owns the generated analysis and
// returns it to the user. If the insert succeeds but the upsert fails,
// the row becomes an orphan: unreachable by similarity search but still
// listed historically. That is logged, not retried, and not an error.
func (c *Coordinator) PersistNew(ctx context.Context, claimText, analysisText string, vec []float32) (int64, error) {
	id, err := c.claims.InsertClaim(ctx, claimText, analysisText)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	entry := vector.Entry{
		ID:     strconv.FormatInt(id, 10),
		Vector: vec,
		Metadata: map[string]string{
			vector.MetadataClaimText: claimText,
		},
	}
	if err := c.index.Upsert(ctx, entry); err != nil {
		c.logger.Warn("vector upsert failed, claim record is orphaned",
			"claim_id", id,
			"error", err)
	}

	return id, nil
}
