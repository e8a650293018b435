package model

import (
	"fmt"
	"time"
)

// Config is the complete FactSpark configuration, assembled at process
// start from defaults, config file, environment, and flags. All external
// collaborators are configured here; missing required settings are a
// startup-fatal error, never a per-request one.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Database   DatabaseConfig   `yaml:"database"`
	Vector     VectorConfig     `yaml:"vector"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Server     ServerConfig     `yaml:"server"`
}

// LLMConfig configures the analysis-generation provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama"
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds, per call
	MaxTokens int    `yaml:"max_tokens"`

	// RequestsPerSecond bounds outbound API calls; 0 disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// EmbeddingConfig configures the embedding provider. The model's output
// dimension is fixed for the lifetime of the vector collection.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama"
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds, per call
	Dimension int    `yaml:"dimension"`
}

// DatabaseConfig points at the relational claim store.
type DatabaseConfig struct {
	URL string `yaml:"url"` // postgres connection string
}

// VectorConfig points at the Qdrant vector index.
type VectorConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

// SimilarityConfig holds the reuse decision tuning.
type SimilarityConfig struct {
	// Threshold is the minimum cosine similarity, inclusive, for
	// treating a prior claim as "the same claim" and reusing its
	// analysis. Lowering it raises the reuse rate and the risk of
	// serving an analysis for a materially different claim; raising it
	// pushes toward always regenerating.
	Threshold float64 `yaml:"threshold"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ListCacheTTL    time.Duration `yaml:"list_cache_ttl"`
}

// DefaultConfig returns sensible defaults for everything that has one.
// Credentials and endpoints have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Timeout:           30,
			MaxTokens:         1024,
			RequestsPerSecond: 2,
			Burst:             3,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Timeout:   15,
			Dimension: 1536,
		},
		Vector: VectorConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "claims",
		},
		Similarity: SimilarityConfig{
			Threshold: 0.90,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			ListCacheTTL:    5 * time.Second,
		},
	}
}

// Validate checks the settings required before any request can be
// served. Failures here abort startup.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "anthropic", "claude":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm: API key is required for provider %q", c.LLM.Provider)
		}
	case "ollama":
		// Local provider, no key needed.
	case "":
		return fmt.Errorf("llm: provider is required")
	default:
		return fmt.Errorf("llm: unknown provider %q (supported: openai, anthropic, ollama)", c.LLM.Provider)
	}

	switch c.Embedding.Provider {
	case "openai":
		if c.Embedding.APIKey == "" {
			return fmt.Errorf("embedding: API key is required for provider %q", c.Embedding.Provider)
		}
	case "ollama":
	case "":
		return fmt.Errorf("embedding: provider is required")
	default:
		return fmt.Errorf("embedding: unknown provider %q (supported: openai, ollama)", c.Embedding.Provider)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("database: url is required")
	}
	if c.Vector.Host == "" || c.Vector.Port == 0 {
		return fmt.Errorf("vector: host and port are required")
	}
	if c.Vector.Collection == "" {
		return fmt.Errorf("vector: collection is required")
	}
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold > 1 {
		return fmt.Errorf("similarity: threshold must be in [0,1], got %v", c.Similarity.Threshold)
	}
	return nil
}
