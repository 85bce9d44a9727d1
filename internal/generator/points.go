package generator

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

// RunPoints populates each target area with individual dive points. Reads
// target_areas.json, writes target_points.json as the final produced list.
//
// Points get the one catalog-wide fuzzy dedup pass: a generated name that
// matches any accepted point name anywhere in the tree, exactly or above the
// similarity threshold, is dropped. The set is seeded from the loaded tree so
// re-runs stay idempotent.
func (r *Runner) RunPoints(ctx context.Context, mode catalog.Mode) error {
	log := zap.L()

	units, err := catalog.LoadWorkUnits(r.stagePath(AreasFile))
	if err != nil {
		return err
	}
	tree, err := r.loadTree(mode)
	if err != nil {
		return err
	}

	points := catalog.NewNameSet(r.threshold)
	for _, name := range tree.PointNames() {
		points.Add(name)
	}

	var produced []catalog.WorkUnit
	for _, unit := range units {
		log.Info("processing area", zap.String("unit", unit.String()))

		area, err := tree.Locate(catalog.WorkUnit{Region: unit.Region, Zone: unit.Zone, Area: unit.Area})
		if err != nil {
			if eris.Is(err, catalog.ErrPathNotFound) {
				log.Warn("area not in tree, skipping",
					zap.String("unit", unit.String()),
					zap.Error(err),
				)
				continue
			}
			return err
		}

		if skip := catalog.ResolveChildren(area, mode, points); skip {
			log.Info("area already populated, keeping",
				zap.String("unit", unit.String()),
				zap.Int("points", len(area.Children)),
			)
			produced = appendPointUnits(produced, unit, area)
			continue
		}
		mutated := mode == catalog.ModeOverwrite

		if err := r.pace(ctx); err != nil {
			return err
		}
		records, err := generateRecords[PointRecord](ctx, r.seq, pointPrompt(unit.Region, unit.Zone, unit.Area))
		if err != nil {
			if eris.Is(err, ErrExhausted) {
				log.Warn("no points generated, skipping area",
					zap.String("unit", unit.String()),
				)
				if mutated {
					if serr := tree.Save(r.treeFile); serr != nil {
						return serr
					}
				}
				continue
			}
			return err
		}

		for _, rec := range records {
			if area.HasChildNamed(rec.Name) {
				continue
			}
			if existing, dup := points.Match(rec.Name); dup {
				log.Info("duplicate point dropped",
					zap.String("candidate", rec.Name),
					zap.String("existing", existing),
					zap.String("unit", unit.String()),
				)
				continue
			}
			points.Add(rec.Name)
			area.Children = append(area.Children, pointNode(rec))
		}

		if err := tree.Save(r.treeFile); err != nil {
			return err
		}
		log.Info("area populated",
			zap.String("unit", unit.String()),
			zap.Int("points", len(area.Children)),
		)
		produced = appendPointUnits(produced, unit, area)
	}

	return catalog.SaveWorkUnits(r.stagePath(PointsFile), produced)
}

func pointNode(rec PointRecord) *catalog.Node {
	return &catalog.Node{
		ID:           catalog.NewID(catalog.KindPoint, rec.Name),
		Name:         rec.Name,
		Kind:         catalog.KindPoint,
		Description:  rec.Description,
		Level:        rec.Level,
		MaxDepth:     rec.MaxDepth,
		EntryType:    rec.EntryType,
		Current:      rec.Current,
		Topography:   rec.Topography,
		Features:     rec.Features,
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		ImageKeyword: rec.ImageKeyword,
	}
}

func appendPointUnits(units []catalog.WorkUnit, unit catalog.WorkUnit, node *catalog.Node) []catalog.WorkUnit {
	for _, c := range node.Children {
		units = append(units, catalog.WorkUnit{
			Region: unit.Region,
			Zone:   unit.Zone,
			Area:   unit.Area,
			Point:  c.Name,
		})
	}
	return units
}
