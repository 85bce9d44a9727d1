package generator

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

// RunAreas populates each target zone with its dive areas. Reads
// target_zones.json, writes target_areas.json for the points stage.
func (r *Runner) RunAreas(ctx context.Context, mode catalog.Mode) error {
	log := zap.L()

	units, err := catalog.LoadWorkUnits(r.stagePath(ZonesFile))
	if err != nil {
		return err
	}
	tree, err := r.loadTree(mode)
	if err != nil {
		return err
	}

	var produced []catalog.WorkUnit
	for _, unit := range units {
		log.Info("processing zone", zap.String("unit", unit.String()))

		zone, err := tree.Locate(catalog.WorkUnit{Region: unit.Region, Zone: unit.Zone})
		if err != nil {
			if eris.Is(err, catalog.ErrPathNotFound) {
				log.Warn("zone not in tree, skipping",
					zap.String("unit", unit.String()),
					zap.Error(err),
				)
				continue
			}
			return err
		}

		if skip := catalog.ResolveChildren(zone, mode, nil); skip {
			log.Info("zone already populated, keeping",
				zap.String("unit", unit.String()),
				zap.Int("areas", len(zone.Children)),
			)
			produced = appendAreaUnits(produced, unit, zone)
			continue
		}
		mutated := mode == catalog.ModeOverwrite

		if err := r.pace(ctx); err != nil {
			return err
		}
		records, err := generateRecords[AreaRecord](ctx, r.seq, areaPrompt(unit.Region, unit.Zone))
		if err != nil {
			if eris.Is(err, ErrExhausted) {
				log.Warn("no areas generated, skipping zone",
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
			if zone.HasChildNamed(rec.Name) {
				continue
			}
			zone.Children = append(zone.Children, &catalog.Node{
				ID:          catalog.NewID(catalog.KindArea, rec.Name),
				Name:        rec.Name,
				Kind:        catalog.KindArea,
				Description: rec.Description,
			})
		}

		if err := tree.Save(r.treeFile); err != nil {
			return err
		}
		log.Info("zone populated",
			zap.String("unit", unit.String()),
			zap.Int("areas", len(zone.Children)),
		)
		produced = appendAreaUnits(produced, unit, zone)
	}

	return catalog.SaveWorkUnits(r.stagePath(AreasFile), produced)
}

func appendAreaUnits(units []catalog.WorkUnit, unit catalog.WorkUnit, node *catalog.Node) []catalog.WorkUnit {
	for _, c := range node.Children {
		units = append(units, catalog.WorkUnit{
			Region: unit.Region,
			Zone:   unit.Zone,
			Area:   c.Name,
		})
	}
	return units
}
