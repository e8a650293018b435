package llm

import (
	"context"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "test-key"},
			wantName: "openai",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "test-key"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "claude", APIKey: "test-key"},
			wantName: "anthropic",
		},
		{
			name:     "ollama needs no key",
			config:   Config{Provider: "ollama"},
			wantName: "ollama",
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "bard"},
			wantErr: true,
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider %q, got %q", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewEmbedder(t *testing.T) {
	if _, err := NewEmbedder(Config{Provider: "openai", APIKey: "k"}); err != nil {
		t.Errorf("Expected openai embedder, got error: %v", err)
	}
	if _, err := NewEmbedder(Config{Provider: "ollama"}); err != nil {
		t.Errorf("Expected ollama embedder, got error: %v", err)
	}
	// Anthropic has no embeddings API
	if _, err := NewEmbedder(Config{Provider: "anthropic", APIKey: "k"}); err == nil {
		t.Error("Expected error for anthropic embedder, got nil")
	}
}

type countingProvider struct {
	calls int
}

func (c *countingProvider) Name() string                         { return "counting" }
func (c *countingProvider) IsAvailable(ctx context.Context) bool { return true }
func (c *countingProvider) Analyze(ctx context.Context, claimText string) (string, error) {
	c.calls++
	return "analysis", nil
}

func TestWithRateLimit(t *testing.T) {
	inner := &countingProvider{}

	// Zero rate disables wrapping entirely
	if p := WithRateLimit(inner, 0, 0); p != Provider(inner) {
		t.Error("Expected zero rate to return the inner provider unchanged")
	}

	limited := WithRateLimit(inner, 100, 1)
	if limited.Name() != "counting" {
		t.Errorf("Expected wrapped name to delegate, got %q", limited.Name())
	}

	for i := 0; i < 3; i++ {
		if _, err := limited.Analyze(context.Background(), "claim"); err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 delegated calls, got %d", inner.calls)
	}
}
