package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/factspark/factspark/internal/llm"
	"github.com/factspark/factspark/internal/model"
	"github.com/factspark/factspark/internal/pipeline"
	"github.com/factspark/factspark/internal/store"
	"github.com/factspark/factspark/internal/vector/qdrant"
)

// loadConfig assembles the configuration from defaults, the config
// file, and FACTSPARK_* environment variables, then validates it.
// Validation failures abort startup.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Overrides from config file / environment
	overrideString(&cfg.LLM.Provider, "llm_provider")
	overrideString(&cfg.LLM.Model, "llm_model")
	overrideString(&cfg.LLM.APIKey, "llm_api_key")
	overrideString(&cfg.LLM.BaseURL, "llm_base_url")
	overrideInt(&cfg.LLM.Timeout, "llm_timeout")
	overrideInt(&cfg.LLM.MaxTokens, "llm_max_tokens")
	overrideFloat(&cfg.LLM.RequestsPerSecond, "llm_requests_per_second")
	overrideInt(&cfg.LLM.Burst, "llm_burst")

	overrideString(&cfg.Embedding.Provider, "embedding_provider")
	overrideString(&cfg.Embedding.Model, "embedding_model")
	overrideString(&cfg.Embedding.APIKey, "embedding_api_key")
	overrideString(&cfg.Embedding.BaseURL, "embedding_base_url")
	overrideInt(&cfg.Embedding.Timeout, "embedding_timeout")
	overrideInt(&cfg.Embedding.Dimension, "embedding_dimension")

	overrideString(&cfg.Database.URL, "database_url")
	overrideString(&cfg.Vector.Host, "qdrant_host")
	overrideInt(&cfg.Vector.Port, "qdrant_port")
	overrideString(&cfg.Vector.Collection, "qdrant_collection")
	overrideFloat(&cfg.Similarity.Threshold, "similarity_threshold")
	overrideString(&cfg.Server.Addr, "server_addr")

	// Conventional environment variables take over when nothing more
	// specific is configured.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	if cfg.Embedding.APIKey == "" {
		switch cfg.Embedding.Provider {
		case "openai":
			cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.Embedding.BaseURL == "" {
				cfg.Embedding.BaseURL = baseURL
			}
		}
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := viper.GetInt(key); v != 0 {
		*dst = v
	}
}

func overrideFloat(dst *float64, key string) {
	if v := viper.GetFloat64(key); v != 0 {
		*dst = v
	}
}

// app bundles the wired application core and its closers.
type app struct {
	pipeline *pipeline.Pipeline
	claims   store.ClaimStore
	index    *qdrant.Repository
	config   *model.Config
}

// buildApp constructs every external collaborator once and injects them
// into the pipeline. Any failure here is startup-fatal.
func buildApp(ctx context.Context, cfg *model.Config, logger *slog.Logger) (*app, error) {
	claims, err := store.NewPostgres(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("claim store: %w", err)
	}

	index, err := qdrant.New(ctx, cfg.Vector.Host, cfg.Vector.Port, cfg.Vector.Collection)
	if err != nil {
		claims.Close()
		return nil, fmt.Errorf("vector index: %w", err)
	}
	if err := index.EnsureCollection(ctx, cfg.Embedding.Dimension); err != nil {
		claims.Close()
		_ = index.Close()
		return nil, err
	}

	embedder, err := llm.NewEmbedder(llm.EmbedderConfigFromModel(cfg.Embedding))
	if err != nil {
		claims.Close()
		_ = index.Close()
		return nil, fmt.Errorf("embedder: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		claims.Close()
		_ = index.Close()
		return nil, fmt.Errorf("analysis provider: %w", err)
	}
	provider = llm.WithRateLimit(provider, cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)

	return &app{
		pipeline: pipeline.New(embedder, provider, claims, index, cfg.Similarity.Threshold, logger),
		claims:   claims,
		index:    index,
		config:   cfg,
	}, nil
}

// close releases all external connections.
func (a *app) close() {
	a.claims.Close()
	_ = a.index.Close()
}

// newLogger builds the process logger. Verbose switches on debug level.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
