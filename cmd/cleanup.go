package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/reefatlas/reefatlas-cli/internal/store"
)

var cleanupExecute bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete database rows with a stale provenance method",
	Long:  "Scans the point table and removes rows whose method tag differs from the configured provenance method, in batches. Dry-run unless --execute is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		cleaner := store.NewCleaner(s, cfg.Cleanup.ProvenanceMethod, cfg.Cleanup.BatchSize, cleanupExecute)
		report, err := cleaner.Run(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupExecute, "execute", false, "actually delete rows (default is a dry run)")
	rootCmd.AddCommand(cleanupCmd)
}
