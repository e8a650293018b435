package pipeline

import (
	"context"
	"testing"

	"github.com/factspark/factspark/internal/vector"
)

func TestResolver_EmptyIndexIsMiss(t *testing.T) {
	r := NewResolver(&stubIndex{}, 0.90)
	res, err := r.Resolve(context.Background(), []float32{1, 0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Hit {
		t.Error("Expected miss on empty index")
	}
}

func TestResolver_BelowThresholdIsMiss(t *testing.T) {
	idx := &stubIndex{matches: []vector.Match{{ID: "7", Score: 0.5}}}
	r := NewResolver(idx, 0.90)

	res, err := r.Resolve(context.Background(), []float32{1, 0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Hit {
		t.Errorf("Expected miss at score 0.5, got hit on claim %d", res.ClaimID)
	}
	if res.Score != 0.5 {
		t.Errorf("Expected miss to carry the observed score, got %v", res.Score)
	}
}

func TestResolver_AtThresholdIsHit(t *testing.T) {
	idx := &stubIndex{matches: []vector.Match{{
		ID:       "7",
		Score:    0.90,
		Metadata: map[string]string{vector.MetadataClaimText: "the original claim"},
	}}}
	r := NewResolver(idx, 0.90)

	res, err := r.Resolve(context.Background(), []float32{1, 0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !res.Hit {
		t.Fatal("Expected hit at score exactly equal to the threshold")
	}
	if res.ClaimID != 7 {
		t.Errorf("Expected claim id 7, got %d", res.ClaimID)
	}
	if res.SimilarClaimText != "the original claim" {
		t.Errorf("Expected denormalized claim text, got %q", res.SimilarClaimText)
	}
}

func TestResolver_UnparsableIDIsMiss(t *testing.T) {
	idx := &stubIndex{matches: []vector.Match{{ID: "not-a-number", Score: 0.99}}}
	r := NewResolver(idx, 0.90)

	res, err := r.Resolve(context.Background(), []float32{1, 0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Hit {
		t.Error("Expected miss for unparsable entry id")
	}
}

func TestNewResolver_DefaultThreshold(t *testing.T) {
	idx := &stubIndex{matches: []vector.Match{{ID: "1", Score: 0.895}}}
	r := NewResolver(idx, 0)

	// 0.895 < default 0.90: miss
	res, err := r.Resolve(context.Background(), []float32{1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Hit {
		t.Error("Expected the default threshold of 0.90 to apply")
	}
}
