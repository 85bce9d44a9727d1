package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

var statusWithStore bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog tree and database counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := catalog.LoadTree(cfg.Catalog.TreeFile)
		if err != nil {
			return err
		}
		counts := tree.CountByKind()

		status := map[string]any{
			"tree_file": cfg.Catalog.TreeFile,
			"regions":   counts[catalog.KindRegion],
			"zones":     counts[catalog.KindZone],
			"areas":     counts[catalog.KindArea],
			"points":    counts[catalog.KindPoint],
		}

		if statusWithStore {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			total, err := s.CountPoints(cmd.Context())
			if err != nil {
				return err
			}
			methods, err := s.ListMethods(cmd.Context())
			if err != nil {
				return err
			}
			status["db_points"] = total
			status["db_methods"] = methods
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusWithStore, "store", false, "include database counts")
	rootCmd.AddCommand(statusCmd)
}
