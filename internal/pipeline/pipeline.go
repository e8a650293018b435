// Package pipeline implements the deduplicating claim analyzer: embed
// the claim, look for a semantically similar prior claim, and either
// reuse its stored analysis or generate and record a new one.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/factspark/factspark/internal/llm"
	"github.com/factspark/factspark/internal/model"
	"github.com/factspark/factspark/internal/store"
	"github.com/factspark/factspark/internal/vector"
)

// recordingFailedWarning is surfaced to the caller when the analysis was
// produced but could not be stored for future reuse.
const recordingFailedWarning = "analysis could not be recorded for future reuse"

// Pipeline sequences one analyze request. Each invocation is an
// independent, stateless unit of work; concurrent invocations share no
// mutable state. Concurrent submissions of near-duplicate claims may
// both generate before either is indexed; deduplication is best-effort
// by design.
type Pipeline struct {
	embedder    llm.Embedder
	provider    llm.Provider
	resolver    *Resolver
	coordinator *Coordinator
	claims      store.ClaimStore
	logger      *slog.Logger
}

// New creates a Pipeline from its four external collaborators.
func New(embedder llm.Embedder, provider llm.Provider, claims store.ClaimStore, index vector.Repository, threshold float64, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		embedder:    embedder,
		provider:    provider,
		resolver:    NewResolver(index, threshold),
		coordinator: NewCoordinator(claims, index, logger),
		claims:      claims,
		logger:      logger,
	}
}

// Analyze runs the full sequence for one claim: validate, embed,
// resolve similarity, then reuse or generate-and-persist.
func (p *Pipeline) Analyze(ctx context.Context, claimText string) (*model.AnalysisResult, error) {
	claimText = strings.TrimSpace(claimText)
	if claimText == "" {
		return nil, ErrInvalidInput
	}

	vec, err := p.embedder.Embed(ctx, claimText)
	if err != nil || len(vec) == 0 {
		if err == nil {
			err = fmt.Errorf("embedder returned an empty vector")
		}
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	res, err := p.resolver.Resolve(ctx, vec)
	if err != nil {
		// The index is an advisory cache; if it cannot be queried the
		// request degrades to always-generate instead of failing.
		p.logger.Warn("similarity lookup failed, generating fresh analysis", "error", err)
		res = Resolution{}
	}

	if res.Hit {
		if result := p.reuse(ctx, claimText, res); result != nil {
			return result, nil
		}
		// Broken join: the hit pointed at a claim record that no longer
		// resolves (or one without an analysis). Fall through to
		// generation; never fail the request for this.
	}

	return p.generateAndPersist(ctx, claimText, vec)
}

// reuse fetches the stored analysis for a similarity hit. Returns nil
// when the referenced record cannot serve the request.
func (p *Pipeline) reuse(ctx context.Context, claimText string, res Resolution) *model.AnalysisResult {
	rec, err := p.claims.GetClaim(ctx, res.ClaimID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Debug("similarity hit references missing claim record, treating as miss",
				"claim_id", res.ClaimID)
		} else {
			p.logger.Warn("failed to fetch claim record for similarity hit, treating as miss",
				"claim_id", res.ClaimID,
				"error", err)
		}
		return nil
	}
	if rec.Analysis == "" {
		p.logger.Debug("similarity hit has no stored analysis, treating as miss",
			"claim_id", res.ClaimID)
		return nil
	}

	similarText := res.SimilarClaimText
	if similarText == "" {
		similarText = rec.Text
	}

	p.logger.Info("reusing stored analysis",
		"claim_id", rec.ID,
		"score", res.Score)

	return &model.AnalysisResult{
		SubmittedClaim:   claimText,
		Status:           model.SourceReused(rec.ID),
		AnalysisText:     rec.Analysis,
		SimilarClaimText: similarText,
	}
}

// generateAndPersist asks the LLM for a fresh analysis and records it
// best-effort.
func (p *Pipeline) generateAndPersist(ctx context.Context, claimText string, vec []float32) (*model.AnalysisResult, error) {
	analysis, err := p.provider.Analyze(ctx, claimText)
	if err != nil || strings.TrimSpace(analysis) == "" {
		if err == nil {
			err = fmt.Errorf("provider returned an empty analysis")
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	result := &model.AnalysisResult{
		SubmittedClaim: claimText,
		Status:         model.SourceGenerated,
		AnalysisText:   analysis,
	}

	id, err := p.coordinator.PersistNew(ctx, claimText, analysis, vec)
	if err != nil {
		// The user still gets their analysis; only future deduplication
		// quality degrades.
		p.logger.Error("failed to record generated analysis", "error", err)
		result.Warning = recordingFailedWarning
		return result, nil
	}

	p.logger.Info("generated and recorded new analysis", "claim_id", id)
	return result, nil
}

// ListRecent returns up to limit claims, newest first. Read-only, for
// display.
func (p *Pipeline) ListRecent(ctx context.Context, limit int) ([]model.ClaimRecord, error) {
	return p.claims.ListRecent(ctx, limit)
}
