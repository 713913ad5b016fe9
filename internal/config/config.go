// Package config provides configuration loading and validation for the
// optimizer. Configuration is loaded once at startup and treated as
// immutable afterward; the ladder and distribution tables are safe for
// concurrent reads.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Embedding backend names accepted in configuration.
const (
	BackendLexical = "lexical"
	BackendGemini  = "gemini"
)

// Config is the static configuration surface consumed by the pipeline.
// All fields are optional; missing values use defaults.
type Config struct {
	// Ladder is the compression ladder, loosest level first.
	Ladder []types.StyleProfile `json:"ladder,omitempty" validate:"omitempty,min=1"`
	// Page is the physical page the renderer will produce.
	Page types.PageCapacity `json:"page,omitempty"`
	// MaxIterations is the safety cap on the fit loop.
	MaxIterations int `json:"max_iterations,omitempty" validate:"omitempty,gt=0"`
	// Distribution is the target category mix for content selection.
	Distribution map[string]float64 `json:"distribution,omitempty" validate:"omitempty,dive,gte=0,lte=1"`

	// EmbeddingBackend selects the scoring backend.
	EmbeddingBackend string `json:"embedding_backend,omitempty" validate:"omitempty,oneof=lexical gemini"`
	// EmbeddingModel overrides the Gemini embedding model name.
	EmbeddingModel string `json:"embedding_model,omitempty"`
	// ScoringWorkers bounds concurrent embedding batch requests.
	ScoringWorkers int `json:"scoring_workers,omitempty" validate:"omitempty,gt=0"`
	// APIKey is the Gemini API key (env GEMINI_API_KEY wins if set).
	APIKey string `json:"api_key,omitempty"`

	// Port is the HTTP server port for the serve command.
	Port int `json:"port,omitempty" validate:"omitempty,gte=1,lte=65535"`
	// Verbose enables detailed CLI output.
	Verbose bool `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration: the five-level ladder, US
// letter, and the default category distribution.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills any unset field with its default value.
func (c *Config) ApplyDefaults() {
	if len(c.Ladder) == 0 {
		c.Ladder = types.DefaultLadder().Levels
	}
	if c.Page == (types.PageCapacity{}) {
		c.Page = types.DefaultPageCapacity()
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 50
	}
	if c.Distribution == nil {
		c.Distribution = make(map[string]float64)
		for category, share := range types.DefaultDistribution() {
			c.Distribution[string(category)] = share
		}
	}
	if c.EmbeddingBackend == "" {
		c.EmbeddingBackend = BackendLexical
	}
	if c.ScoringWorkers == 0 {
		c.ScoringWorkers = 4
	}
	if c.Port == 0 {
		c.Port = 8080
	}
}

// Validate checks the configuration for structural and semantic validity.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := validateLadder(c.Ladder); err != nil {
		return err
	}

	if c.Page.ContentHeight() <= 0 || c.Page.ContentWidth() <= 0 {
		return fmt.Errorf("invalid config: page margins leave no content area")
	}

	total := 0.0
	for name, share := range c.Distribution {
		if !types.Category(name).Valid() {
			return fmt.Errorf("invalid config: unknown distribution category %q", name)
		}
		total += share
	}
	if total > 1.0+1e-9 {
		return fmt.Errorf("invalid config: distribution shares sum to %.2f (> 1.0)", total)
	}

	if c.EmbeddingBackend == BackendGemini && c.ResolveAPIKey() == "" {
		return fmt.Errorf("invalid config: gemini backend requires an API key")
	}

	return nil
}

// validateLadder verifies each level is strictly more compact than the
// previous: no dimension grows, and at least one shrinks.
func validateLadder(ladder []types.StyleProfile) error {
	for i, level := range ladder {
		if level.FontSize <= 0 || level.LineHeightMultiplier <= 0 {
			return fmt.Errorf("invalid config: ladder level %d has non-positive metrics", i)
		}
		if i == 0 {
			continue
		}

		prev := ladder[i-1]
		if level.FontSize > prev.FontSize ||
			level.LineHeightMultiplier > prev.LineHeightMultiplier ||
			level.SectionSpacing > prev.SectionSpacing ||
			level.EntrySpacing > prev.EntrySpacing {
			return fmt.Errorf("invalid config: ladder level %d is looser than level %d", i, i-1)
		}
		if level.FontSize == prev.FontSize &&
			level.LineHeightMultiplier == prev.LineHeightMultiplier &&
			level.SectionSpacing == prev.SectionSpacing &&
			level.EntrySpacing == prev.EntrySpacing {
			return fmt.Errorf("invalid config: ladder level %d is no more compact than level %d", i, i-1)
		}
	}
	return nil
}

// CompressionLadder returns the ladder as the shared immutable type.
func (c *Config) CompressionLadder() *types.CompressionLadder {
	return &types.CompressionLadder{Levels: c.Ladder}
}

// DistributionTable returns the category distribution keyed by Category.
func (c *Config) DistributionTable() map[types.Category]float64 {
	table := make(map[types.Category]float64, len(c.Distribution))
	for name, share := range c.Distribution {
		table[types.Category(name)] = share
	}
	return table
}

// ResolveAPIKey returns the Gemini API key, preferring the environment.
func (c *Config) ResolveAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}
