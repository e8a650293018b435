package llm

import (
	"context"
	"fmt"

	"github.com/factspark/factspark/internal/model"
)

// Provider defines the interface for analysis-generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze generates a free-text veracity analysis for the claim.
	// The claim text is embedded in the prompt verbatim. Output length
	// is bounded by the configured max tokens.
	Analyze(ctx context.Context, claimText string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Embedder defines the interface for embedding backends. The returned
// vector has a fixed dimension determined by the configured model and
// constant across the life of the vector collection.
type Embedder interface {
	// Name returns the provider name
	Name() string

	// Embed converts text into its embedding vector
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Timeout:   30,
		MaxTokens: 1024,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// EmbedderConfigFromModel converts model.EmbeddingConfig to llm.Config
func EmbedderConfigFromModel(mc model.EmbeddingConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}

// analysisSystemPrompt frames every analysis request. The model is asked
// to assess likelihood, not to assert truth.
const analysisSystemPrompt = "You are a careful fact-checking assistant. " +
	"Assess the likely veracity of the user's claim and explain your reasoning briefly. " +
	"State uncertainty explicitly when the evidence is mixed or unknown to you."

// BuildAnalysisPrompt constructs the single evaluative prompt for a claim.
// The claim text appears verbatim, quoted, so the model analyzes exactly
// what the user submitted.
func BuildAnalysisPrompt(claimText string) string {
	return fmt.Sprintf("Analyze the following claim for its likely veracity and provide a brief explanation. Claim: %q", claimText)
}
