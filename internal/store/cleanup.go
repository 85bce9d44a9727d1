package store

import (
	"context"

	"go.uber.org/zap"
)

// CleanupReport summarizes one cleanup pass.
type CleanupReport struct {
	Total   int   `json:"total"`
	Kept    int   `json:"kept"`
	Stale   int   `json:"stale"`
	Deleted int64 `json:"deleted"`
	Batches int   `json:"batches"`
	DryRun  bool  `json:"dry_run"`
}

// Cleaner removes rows whose provenance method differs from the current
// loader's tag, in bounded batches. Dry-run by default: callers opt into
// deletion explicitly.
type Cleaner struct {
	store      Store
	keepMethod string
	batchSize  int
	execute    bool
}

// NewCleaner wires a cleanup pass. A batchSize of zero or less falls back
// to 500.
func NewCleaner(s Store, keepMethod string, batchSize int, execute bool) *Cleaner {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Cleaner{
		store:      s,
		keepMethod: keepMethod,
		batchSize:  batchSize,
		execute:    execute,
	}
}

// Run scans for stale rows and, when execute is set, deletes them.
func (c *Cleaner) Run(ctx context.Context) (*CleanupReport, error) {
	log := zap.L()

	total, err := c.store.CountPoints(ctx)
	if err != nil {
		return nil, err
	}
	stale, err := c.store.StaleIDs(ctx, c.keepMethod)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{
		Total:  total,
		Stale:  len(stale),
		Kept:   total - len(stale),
		DryRun: !c.execute,
	}
	log.Info("cleanup scan complete",
		zap.Int("total", report.Total),
		zap.Int("kept", report.Kept),
		zap.Int("stale", report.Stale),
		zap.String("keep_method", c.keepMethod),
		zap.Bool("dry_run", report.DryRun),
	)

	if !c.execute || len(stale) == 0 {
		return report, nil
	}

	for start := 0; start < len(stale); start += c.batchSize {
		end := start + c.batchSize
		if end > len(stale) {
			end = len(stale)
		}
		n, err := c.store.DeletePoints(ctx, stale[start:end])
		if err != nil {
			return report, err
		}
		report.Deleted += n
		report.Batches++
		log.Info("cleanup batch deleted",
			zap.Int("batch", report.Batches),
			zap.Int64("rows", n),
		)
	}

	return report, nil
}
