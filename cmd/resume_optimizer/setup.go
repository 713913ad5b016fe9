package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/scoring"
)

// loadConfig loads the config file if a path was given, otherwise starts
// from defaults. The result is validated and ready for use.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.ApplyDefaults()
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline constructs the scoring backend named by the config and wires
// it into a pipeline. The returned cleanup func releases backend resources
// and must be called when the pipeline is no longer needed.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	var embedder scoring.Embedder
	cleanup := func() {}

	switch cfg.EmbeddingBackend {
	case config.BackendGemini:
		apiKey := cfg.ResolveAPIKey()
		if apiKey == "" {
			return nil, nil, fmt.Errorf("embedding backend %q requires an API key (set GEMINI_API_KEY or api_key in config)", cfg.EmbeddingBackend)
		}
		gem, err := scoring.NewGeminiEmbedder(ctx, apiKey, cfg.EmbeddingModel, cfg.ScoringWorkers)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create embedding client: %w", err)
		}
		embedder = gem
		cleanup = func() { _ = gem.Close() }
	default:
		embedder = scoring.NewLexicalEmbedder()
	}

	return pipeline.New(cfg, scoring.NewScorer(embedder)), cleanup, nil
}
