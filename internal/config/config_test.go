package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/locations_seed.json", cfg.Catalog.TreeFile)
	assert.Equal(t, "config", cfg.Catalog.ConfigDir)
	assert.InDelta(t, 0.85, cfg.Catalog.SimilarityThreshold, 0.001)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Gemini.BaseURL)
	require.NotEmpty(t, cfg.Generator.Models)
	assert.Equal(t, "gemini-2.5-flash", cfg.Generator.Models[0])
	assert.Equal(t, 2, cfg.Generator.UnitPauseSecs)
	assert.Equal(t, 1000, cfg.Generator.QuotaWaitMS)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "gen-batch-v1", cfg.Cleanup.ProvenanceMethod)
	assert.Equal(t, 500, cfg.Cleanup.BatchSize)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
catalog:
  tree_file: /tmp/tree.json
  similarity_threshold: 0.9
generator:
  models:
    - gemini-2.5-flash
  unit_pause_secs: 0
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tree.json", cfg.Catalog.TreeFile)
	assert.InDelta(t, 0.9, cfg.Catalog.SimilarityThreshold, 0.001)
	assert.Equal(t, []string{"gemini-2.5-flash"}, cfg.Generator.Models)
	assert.Equal(t, 0, cfg.Generator.UnitPauseSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, "config", cfg.Catalog.ConfigDir)
	assert.Equal(t, 500, cfg.Cleanup.BatchSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("REEFATLAS_STORE_DRIVER", "postgres")
	t.Setenv("REEFATLAS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestGeminiAPIKeys(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want []string
	}{
		{"empty", "", nil},
		{"single", "key-a", []string{"key-a"}},
		{"multiple", "key-a,key-b,key-c", []string{"key-a", "key-b", "key-c"}},
		{"whitespace and blanks", " key-a , ,key-b,", []string{"key-a", "key-b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GeminiConfig{Keys: tt.keys}
			assert.Equal(t, tt.want, g.APIKeys())
		})
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	assert.Error(t, err)
}
