package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/config"
)

func TestLoadConfigDefaultsWithoutPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.BackendLexical, cfg.EmbeddingBackend)
	assert.Equal(t, 50, cfg.MaxIterations)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": 7}`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxIterations)
	// Unset fields still get defaults.
	assert.NotEmpty(t, cfg.Ladder)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": -5}`), 0644))

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestBuildPipelineLexical(t *testing.T) {
	cfg := config.Default()

	p, cleanup, err := buildPipeline(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, p)
	cleanup()
}
