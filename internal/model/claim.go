package model

import (
	"fmt"
	"time"
)

// ClaimRecord is a fact-checked claim as stored in the relational store.
// Records are append-only: a row is created exactly once, at the moment a
// new analysis is produced, and never mutated or deleted afterwards.
type ClaimRecord struct {
	ID          int64     `json:"id"`
	Text        string    `json:"claim_text"`              // The submitted claim, verbatim
	Analysis    string    `json:"analysis_text,omitempty"` // LLM-generated analysis
	SubmittedAt time.Time `json:"submitted_at"`
}

// SourceGenerated marks a result produced by a fresh LLM call.
const SourceGenerated = "generated"

// SourceReused builds the provenance label for a result served from a
// previously stored analysis.
func SourceReused(claimID int64) string {
	return fmt.Sprintf("reused:%d", claimID)
}

// AnalysisResult is the structured outcome of analyzing one claim.
type AnalysisResult struct {
	SubmittedClaim string `json:"submittedClaim"`
	Status         string `json:"status"` // "generated" or "reused:<id>"
	AnalysisText   string `json:"analysisText"`

	// SimilarClaimText is the text of the previously checked claim a
	// reused analysis came from, when known.
	SimilarClaimText string `json:"similarClaimText,omitempty"`

	// Warning is set when the analysis was produced but could not be
	// recorded for future reuse. Never fatal for the caller.
	Warning string `json:"warning,omitempty"`
}

// Reused reports whether the result was served from a stored analysis.
func (r *AnalysisResult) Reused() bool {
	return r.Status != SourceGenerated && r.Status != ""
}
