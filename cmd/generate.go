package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
	"github.com/reefatlas/reefatlas-cli/internal/generator"
	"github.com/reefatlas/reefatlas-cli/pkg/gemini"
)

var generateMode string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run a catalog generation stage",
	Long:  "Each stage reads its target list from the config directory, asks the model to populate one tree level, and writes the produced list for the next stage.",
}

// newGenerateRunner builds the stage runner from config. Fails fast when no
// API key is configured: every stage needs one.
func newGenerateRunner() (*generator.Runner, catalog.Mode, error) {
	mode, err := catalog.ParseMode(generateMode)
	if err != nil {
		return nil, "", err
	}

	keys := cfg.Gemini.APIKeys()
	if len(keys) == 0 {
		return nil, "", eris.New("no Gemini API keys configured (set REEFATLAS_GEMINI_KEYS)")
	}
	if len(cfg.Generator.Models) == 0 {
		return nil, "", eris.New("no generator models configured")
	}

	var opts []gemini.Option
	if cfg.Gemini.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.Gemini.BaseURL))
	}
	client := gemini.NewClient(opts...)

	seq := generator.NewSequencer(
		client,
		generator.NewKeyRing(keys),
		cfg.Generator.Models,
		time.Duration(cfg.Generator.QuotaWaitMS)*time.Millisecond,
	)
	runner := generator.NewRunner(
		seq,
		cfg.Catalog.TreeFile,
		cfg.Catalog.ConfigDir,
		cfg.Catalog.SimilarityThreshold,
		time.Duration(cfg.Generator.UnitPauseSecs)*time.Second,
	)
	return runner, mode, nil
}

func init() {
	generateCmd.PersistentFlags().StringVar(&generateMode, "mode", "append",
		"merge mode: append (skip populated), overwrite (regenerate targets), clean (archive tree, start empty)")
	rootCmd.AddCommand(generateCmd)
}
