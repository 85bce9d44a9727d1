package generator

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

// Stage input/output file names under the config directory. Each stage reads
// its target list and writes the produced list consumed by the next stage.
const (
	RegionsFile = "target_regions.json"
	ZonesFile   = "target_zones.json"
	AreasFile   = "target_areas.json"
	PointsFile  = "target_points.json"
)

// Runner executes the generation stages against one catalog tree file.
type Runner struct {
	seq       *Sequencer
	treeFile  string
	configDir string
	threshold float64
	pacer     *rate.Limiter
}

// NewRunner wires a runner. pause is the minimum spacing between work units,
// enforced across models and retries so bursts never hit the API back to back.
func NewRunner(seq *Sequencer, treeFile, configDir string, threshold float64, pause time.Duration) *Runner {
	var pacer *rate.Limiter
	if pause > 0 {
		pacer = rate.NewLimiter(rate.Every(pause), 1)
	}
	return &Runner{
		seq:       seq,
		treeFile:  treeFile,
		configDir: configDir,
		threshold: threshold,
		pacer:     pacer,
	}
}

func (r *Runner) stagePath(name string) string {
	return filepath.Join(r.configDir, name)
}

// loadTree opens the working tree for a stage. Clean mode archives whatever
// is on disk to a .bak sibling and starts from an empty tree; append and
// overwrite operate on the existing file.
func (r *Runner) loadTree(mode catalog.Mode) (*catalog.Tree, error) {
	if mode == catalog.ModeClean {
		bak, err := catalog.Backup(r.treeFile)
		if err != nil {
			return nil, err
		}
		if bak != "" {
			zap.L().Info("archived existing tree", zap.String("backup", bak))
		}
		return &catalog.Tree{}, nil
	}
	return catalog.LoadTree(r.treeFile)
}

// pace blocks until the inter-unit spacing allows the next request.
func (r *Runner) pace(ctx context.Context) error {
	if r.pacer == nil {
		return nil
	}
	return r.pacer.Wait(ctx)
}
