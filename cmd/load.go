package main

import (
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
	"github.com/reefatlas/reefatlas-cli/internal/store"
)

var (
	loadMethod    string
	loadBatchSize int
	loadWorkers   int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Flatten the catalog tree into the database",
	Long:  "Walks the tree file, flattens every dive point to a relational row tagged with the provenance method, and upserts the rows in batches.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L()

		tree, err := catalog.LoadTree(cfg.Catalog.TreeFile)
		if err != nil {
			return err
		}
		method := loadMethod
		if method == "" {
			method = cfg.Cleanup.ProvenanceMethod
		}

		rows := store.Flatten(tree, method)
		if len(rows) == 0 {
			log.Warn("tree has no loadable points", zap.String("tree", cfg.Catalog.TreeFile))
			return nil
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		batchSize := loadBatchSize
		if batchSize <= 0 {
			batchSize = 200
		}

		var upserted atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(loadWorkers)
		for start := 0; start < len(rows); start += batchSize {
			end := start + batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]
			g.Go(func() error {
				n, err := s.UpsertPoints(gctx, batch)
				if err != nil {
					return eris.Wrapf(err, "upsert batch of %d", len(batch))
				}
				upserted.Add(n)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		log.Info("catalog loaded",
			zap.Int("points", len(rows)),
			zap.Int64("upserted", upserted.Load()),
			zap.String("method", method),
		)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadMethod, "method", "", "provenance method tag (default from config)")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 200, "rows per upsert batch")
	loadCmd.Flags().IntVar(&loadWorkers, "workers", 4, "concurrent upsert batches")
	rootCmd.AddCommand(loadCmd)
}
