package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/factspark/factspark/internal/vector"
)

// DefaultThreshold is the similarity bar for reusing a stored analysis.
// 0.90 is conservative: paraphrases of the same claim usually clear it,
// while materially different claims rarely do. Lowering it increases the
// reuse rate and the risk of serving a wrong analysis; raising it pushes
// toward always regenerating.
const DefaultThreshold = 0.90

// Resolution is the outcome of a similarity lookup.
type Resolution struct {
	Hit              bool
	ClaimID          int64   // id of the matched claim record, valid when Hit
	Score            float32 // cosine similarity of the match
	SimilarClaimText string  // denormalized claim text from the match payload, may be empty
}

// Resolver decides whether a freshly embedded claim is close enough to a
// previously indexed one to reuse its analysis.
type Resolver struct {
	repo      vector.Repository
	threshold float64
}

// NewResolver creates a Resolver. A threshold of 0 falls back to
// DefaultThreshold.
func NewResolver(repo vector.Repository, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{repo: repo, threshold: threshold}
}

// Resolve queries the index for the single nearest neighbor and applies
// the threshold. The boundary is inclusive on the hit side: a score
// exactly at the threshold is a hit.
func (r *Resolver) Resolve(ctx context.Context, vec []float32) (Resolution, error) {
	matches, err := r.repo.Search(ctx, vec, 1)
	if err != nil {
		return Resolution{}, fmt.Errorf("similarity search: %w", err)
	}

	if len(matches) == 0 {
		return Resolution{}, nil
	}

	top := matches[0]
	if float64(top.Score) < r.threshold {
		return Resolution{Score: top.Score}, nil
	}

	claimID, err := strconv.ParseInt(top.ID, 10, 64)
	if err != nil {
		// An id that does not parse back to a claim record id can never
		// resolve; report a miss rather than failing the request.
		return Resolution{Score: top.Score}, nil
	}

	return Resolution{
		Hit:              true,
		ClaimID:          claimID,
		Score:            top.Score,
		SimilarClaimText: top.Metadata[vector.MetadataClaimText],
	}, nil
}
